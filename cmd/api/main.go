package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/internal/config"
	domainRepo "github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/internal/infrastructure/archive"
	"github.com/autospa/autospa-api/internal/infrastructure/database"
	"github.com/autospa/autospa-api/internal/infrastructure/repository"
	"github.com/autospa/autospa-api/internal/presentation/http/handler"
	"github.com/autospa/autospa-api/internal/presentation/http/middleware"
	"github.com/autospa/autospa-api/internal/presentation/http/routes"
	"github.com/autospa/autospa-api/internal/presentation/http/validation"
	"github.com/autospa/autospa-api/pkg/email"
	"github.com/autospa/autospa-api/pkg/oauth"
	"github.com/autospa/autospa-api/pkg/printer"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.Register(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Shop); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	loc := cfg.Database.Location()

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)
	revocations := session.NewRevocations()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	billRepo := repository.NewBillRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Optional off-site copy of submitted bills
	var billArchive domainRepo.BillArchive
	if cfg.Archive.Enabled {
		client, err := archive.NewClient(ctx, cfg.Archive)
		if err != nil {
			log.Printf("Warning: bill archive disabled: %v", err)
		} else {
			billArchive = archive.NewDynamoBillArchive(client, cfg.Archive.Table)
			log.Printf("Archiving bills to DynamoDB table %s", cfg.Archive.Table)
		}
	}

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, serviceRepo)
	searcher := service.NewCatalogSearcher(catalogService, cfg.Billing.SearchDebounce,
		service.WithMinQueryLength(cfg.Billing.MinSearchLen))
	submitter := service.NewBillSubmitter(billRepo, billArchive)
	billService := service.NewBillService(billRepo, catalogService, submitter)
	draftService := service.NewDraftService(catalogService, submitter, cfg.Billing.DraftTTL)

	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, revocations, emailService, googleOAuthService)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo, emailService)
	productService := service.NewProductService(productRepo, settingsRepo)
	offeringService := service.NewOfferingService(serviceRepo)
	customerService := service.NewCustomerService(customerRepo)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Shop)
	dashboardService := service.NewDashboardService(productRepo, serviceRepo, analyticsRepo, settingsRepo, loc)
	reportService := service.NewReportService(billRepo, analyticsRepo, loc)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.Device, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, billRepo, userRepo, settingsService, cfg.Printer.Width, loc)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Offering:  handler.NewOfferingHandler(offeringService),
		Catalog:   handler.NewCatalogHandler(catalogService, searcher),
		Draft:     handler.NewDraftHandler(draftService),
		Bill:      handler.NewBillHandler(billService, loc),
		Customer:  handler.NewCustomerHandler(customerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Report:    handler.NewReportHandler(reportService),
		Settings:  handler.NewSettingsHandler(settingsService),
		User:      handler.NewUserHandler(userService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Revocations:     revocations,
		RateLimiter:     rateLimiter,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Background housekeeping
	go revocations.Run(ctx, 10*time.Minute)
	go draftService.Run(ctx, time.Minute)
	go rateLimiter.Run(ctx, 5*time.Minute)
	go sweep(ctx, time.Hour, func(ctx context.Context) {
		if n, err := idempotencyRepo.DeleteExpired(ctx); err != nil {
			log.Printf("[housekeeping] idempotency keys: %v", err)
		} else if n > 0 {
			log.Printf("[housekeeping] removed %d expired idempotency keys", n)
		}
		if err := passwordResetRepo.DeleteExpired(ctx); err != nil {
			log.Printf("[housekeeping] password reset tokens: %v", err)
		}
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// sweep runs fn every interval until ctx is done
func sweep(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
