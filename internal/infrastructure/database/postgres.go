package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/autospa/autospa-api/internal/config"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection. SQL is logged
// in debug mode only.
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff and access
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.PasswordResetToken{},

		// Catalog
		&entity.Product{},
		&entity.Service{},

		// Billing
		&entity.Customer{},
		&entity.Bill{},
		&entity.BillItem{},

		// System
		&entity.IdempotencyKey{},
		&entity.ShopSettings{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the permissions, the admin and staff roles, the
// shop settings row and, when ADMIN_EMAIL and ADMIN_PASSWORD are set, the
// first admin account. Running it again changes nothing that exists.
func SeedDefaultData(db *gorm.DB, shop config.ShopConfig) error {
	log.Println("Seeding default data...")

	for _, name := range enum.AllPermissions {
		p := entity.Permission{Name: name}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("seed permission %s: %w", name, err)
		}
	}

	var allPermissions []entity.Permission
	if err := db.Find(&allPermissions).Error; err != nil {
		return err
	}

	adminRole, err := seedRole(db, enum.RoleAdmin, allPermissions)
	if err != nil {
		return err
	}
	if _, err := seedRole(db, enum.RoleStaff, pick(allPermissions, enum.StaffPermissions)); err != nil {
		return err
	}

	if err := seedSettings(db, shop); err != nil {
		return err
	}

	if err := seedAdmin(db, adminRole); err != nil {
		return err
	}

	log.Println("Default data seeding completed")
	return nil
}

func pick(all []entity.Permission, names []string) []entity.Permission {
	var out []entity.Permission
	for _, name := range names {
		for _, p := range all {
			if p.Name == name {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// seedRole creates the role if missing and makes its permissions exactly perms
func seedRole(db *gorm.DB, name string, perms []entity.Permission) (*entity.Role, error) {
	var role entity.Role
	if err := db.Where(entity.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, fmt.Errorf("seed role %s: %w", name, err)
	}
	if err := db.Model(&role).Association("Permissions").Replace(perms); err != nil {
		return nil, fmt.Errorf("seed role %s permissions: %w", name, err)
	}
	return &role, nil
}

func seedSettings(db *gorm.DB, shop config.ShopConfig) error {
	var existing entity.ShopSettings
	err := db.First(&existing, entity.ShopSettingsID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	threshold := shop.LowStockThreshold
	if threshold <= 0 {
		threshold = 10
	}
	settings := entity.ShopSettings{
		ID:                entity.ShopSettingsID,
		StoreName:         shop.Name,
		Address:           shop.Address,
		Phone:             shop.Phone,
		CurrencySymbol:    shop.CurrencySymbol,
		LowStockThreshold: threshold,
		ReceiptFooter:     "Thank you! Visit again.",
	}
	if err := db.Create(&settings).Error; err != nil {
		return fmt.Errorf("seed shop settings: %w", err)
	}
	return nil
}

func seedAdmin(db *gorm.DB, adminRole *entity.Role) error {
	adminEmail := strings.ToLower(strings.TrimSpace(viper.GetString("ADMIN_EMAIL")))
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var existing entity.User
	err := db.Where("LOWER(email) = ?", adminEmail).First(&existing).Error
	if err == nil {
		log.Printf("Admin user already exists: %s", adminEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if adminName == "" {
		adminName = "Shop Admin"
	}
	firstName, lastName, _ := strings.Cut(adminName, " ")

	admin := entity.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Provider:  "local",
		IsActive:  true,
		Roles:     []entity.Role{*adminRole},
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("Admin user created: %s", adminEmail)
	return nil
}
