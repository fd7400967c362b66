package routes

import (
	"net/http"

	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/internal/config"
	"github.com/autospa/autospa-api/internal/domain/enum"
	domainRepo "github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/internal/presentation/http/handler"
	"github.com/autospa/autospa-api/internal/presentation/http/middleware"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Offering  *handler.OfferingHandler
	Catalog   *handler.CatalogHandler
	Draft     *handler.DraftHandler
	Bill      *handler.BillHandler
	Customer  *handler.CustomerHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
	Settings  *handler.SettingsHandler
	User      *handler.UserHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Revocations     *session.Revocations
	RateLimiter     *middleware.RateLimiter
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		public := v1.Group("")
		if deps.RateLimiter != nil {
			public.Use(deps.RateLimiter.Middleware())
		}
		registerAuthRoutes(public, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Revocations))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/session", h.Auth.Session)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings are readable by everyone for receipts and thresholds
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", middleware.RequirePermission(enum.PermManageSettings), h.Settings.UpdateSettings)

	protected.GET("/dashboard/summary", middleware.RequirePermission(enum.PermViewDashboard), h.Dashboard.GetSummary)

	registerProductRoutes(protected, h)
	registerServiceRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerDraftRoutes(protected, h, deps)
	registerBillRoutes(protected, h, deps)
	registerCustomerRoutes(protected, h)
	registerReportRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/code/:code", h.Product.GetByCode)
		products.GET("/:id", h.Product.Get)
	}

	manage := products.Group("")
	manage.Use(middleware.RequirePermission(enum.PermManageProducts))
	{
		manage.POST("", h.Product.Create)
		manage.POST("/import", h.Product.Import)
		manage.PUT("/:id", h.Product.Update)
		manage.DELETE("/:id", h.Product.Delete)
	}
}

func registerServiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/services")
	{
		services.GET("", h.Offering.List)
		services.GET("/:id", h.Offering.Get)
	}

	manage := services.Group("")
	manage.Use(middleware.RequirePermission(enum.PermManageServices))
	{
		manage.POST("", h.Offering.Create)
		manage.PUT("/:id", h.Offering.Update)
		manage.DELETE("/:id", h.Offering.Delete)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	catalog := protected.Group("/catalog")
	catalog.Use(middleware.RequirePermission(enum.PermCreateBills))
	{
		catalog.GET("", h.Catalog.Get)
		catalog.GET("/search", h.Catalog.Search)
	}
}

func registerDraftRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	drafts := protected.Group("/drafts")
	drafts.Use(middleware.RequirePermission(enum.PermCreateBills))
	{
		drafts.POST("", h.Draft.Create)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Discard)
		drafts.POST("/:id/items", h.Draft.AddItem)
		drafts.POST("/:id/custom-items", h.Draft.AddCustomItem)
		drafts.DELETE("/:id/items/:index", h.Draft.RemoveItem)
		drafts.PUT("/:id/items/:index/quantity", h.Draft.SetQuantity)
		drafts.PUT("/:id/items/:index/discount", h.Draft.SetItemDiscount)
		drafts.PUT("/:id/discount", h.Draft.SetOverallDiscount)
		drafts.PUT("/:id/header", h.Draft.SetHeader)
		drafts.POST("/:id/finalize", h.Draft.Finalize)
		// A retried submit with the same key gets the first receipt back
		drafts.POST("/:id/submit", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Draft.Submit)
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	bills := protected.Group("/bills")
	{
		bills.POST("", middleware.RequirePermission(enum.PermCreateBills), middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:     deps.IdempotencyRepo,
			Required: true,
		}), h.Bill.Submit)
		bills.GET("", middleware.RequirePermission(enum.PermCreateBills), h.Bill.List)
		bills.GET("/:id", middleware.RequirePermission(enum.PermCreateBills), h.Bill.Get)
		bills.POST("/:id/void", middleware.RequireRole(enum.RoleAdmin), h.Bill.Void)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission(enum.PermManageCustomers))
	{
		customers.GET("", h.Customer.List)
		customers.GET("/vehicle/:vehicle_no", h.Customer.GetByVehicle)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission(enum.PermViewReports))
	{
		reports.GET("", h.Report.Get)
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/top-products", h.Report.TopProducts)
		reports.GET("/top-services", h.Report.TopServices)
		reports.GET("/export", h.Report.Export)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(enum.RoleAdmin), middleware.RequirePermission(enum.PermManageUsers))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.PUT("/:id/active", h.User.SetActive)
		users.DELETE("/:id", h.User.Delete)
	}

	protected.GET("/roles", middleware.RequirePermission(enum.PermManageUsers), h.User.ListRoles)
	protected.GET("/permissions", middleware.RequirePermission(enum.PermManageUsers), h.User.ListPermissions)
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	printerGroup.Use(middleware.RequirePermission(enum.PermCreateBills))
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/bills/:id", h.Printer.PrintBill)
	}
}
