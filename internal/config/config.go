package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
	OAuth     OAuthConfig
	Printer   PrinterConfig
	Shop      ShopConfig
	Billing   BillingConfig
	Archive   ArchiveConfig
}

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	Debug       bool
	FrontendURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// PrinterConfig selects how receipts reach the thermal printer. Type is
// "network" or "usb".
type PrinterConfig struct {
	Type    string
	Address string
	Device  string
	Width   int
}

// ShopConfig seeds the shop settings row on first start
type ShopConfig struct {
	Name              string
	Address           string
	Phone             string
	CurrencySymbol    string
	LowStockThreshold int
}

type BillingConfig struct {
	SearchDebounce time.Duration
	DraftTTL       time.Duration
	MinSearchLen   int
}

// ArchiveConfig enables the DynamoDB copy of submitted bills
type ArchiveConfig struct {
	Enabled         bool
	Table           string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "autospa-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "autospa")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "no-reply@autospa.local")
	viper.SetDefault("SMTP_FROM_NAME", "Auto Spa")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback")
	viper.SetDefault("PRINTER_TYPE", "network")
	viper.SetDefault("PRINTER_ADDRESS", "192.168.1.100:9100")
	viper.SetDefault("PRINTER_DEVICE", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_WIDTH", 48)
	viper.SetDefault("SHOP_NAME", "Auto Spa")
	viper.SetDefault("SHOP_CURRENCY_SYMBOL", "Rs.")
	viper.SetDefault("SHOP_LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("BILLING_SEARCH_DEBOUNCE", "250ms")
	viper.SetDefault("BILLING_DRAFT_TTL", "12h")
	viper.SetDefault("BILLING_MIN_SEARCH_LEN", 2)
	viper.SetDefault("ARCHIVE_ENABLED", false)
	viper.SetDefault("ARCHIVE_TABLE", "autospa-bills")
	viper.SetDefault("AWS_REGION", "ap-south-1")
	viper.SetDefault("ADMIN_EMAIL", "admin@autospa.local")
	viper.SetDefault("ADMIN_NAME", "Shop Admin")

	return &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Env:         viper.GetString("APP_ENV"),
			Port:        viper.GetString("APP_PORT"),
			Debug:       viper.GetBool("APP_DEBUG"),
			FrontendURL: viper.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Email: EmailConfig{
			SMTPHost:     viper.GetString("SMTP_HOST"),
			SMTPPort:     viper.GetInt("SMTP_PORT"),
			SMTPUsername: viper.GetString("SMTP_USERNAME"),
			SMTPPassword: viper.GetString("SMTP_PASSWORD"),
			FromName:     viper.GetString("SMTP_FROM_NAME"),
			FromEmail:    viper.GetString("SMTP_FROM"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Device:  viper.GetString("PRINTER_DEVICE"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Shop: ShopConfig{
			Name:              viper.GetString("SHOP_NAME"),
			Address:           viper.GetString("SHOP_ADDRESS"),
			Phone:             viper.GetString("SHOP_PHONE"),
			CurrencySymbol:    viper.GetString("SHOP_CURRENCY_SYMBOL"),
			LowStockThreshold: viper.GetInt("SHOP_LOW_STOCK_THRESHOLD"),
		},
		Billing: BillingConfig{
			SearchDebounce: viper.GetDuration("BILLING_SEARCH_DEBOUNCE"),
			DraftTTL:       viper.GetDuration("BILLING_DRAFT_TTL"),
			MinSearchLen:   viper.GetInt("BILLING_MIN_SEARCH_LEN"),
		},
		Archive: ArchiveConfig{
			Enabled:         viper.GetBool("ARCHIVE_ENABLED"),
			Table:           viper.GetString("ARCHIVE_TABLE"),
			Region:          viper.GetString("AWS_REGION"),
			Endpoint:        viper.GetString("ARCHIVE_ENDPOINT"),
			AccessKeyID:     viper.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("AWS_SECRET_ACCESS_KEY"),
		},
	}
}

// Location is the shop's time zone, used for day boundaries in reports.
// It falls back to the server's local zone when DB_TIMEZONE is unknown.
func (c *DatabaseConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
