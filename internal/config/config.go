package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the application. It is built once at
// startup and passed to constructors by value or pointer; nothing reads it
// from a global.
type Config struct {
	AppMode        string `env:"APP_MODE,default=dev"`
	Port           string `env:"PORT,default=5000"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
	ClientSiteURL  string `env:"CLIENT_SITE_URL,default=https://localhost:5173"`
	BcryptCost     int    `env:"BCRYPT_COST,default=12"`

	SMS         SMSConfig
	Payment     PaymentConfig
	Maintenance MaintenanceConfig
	Seed        SeedConfig

	// Mode-specific sections, read with a DEV_ or PROD_ prefix
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Cookie   CookieConfig
}

// modeConfig groups the sections that depend on APP_MODE
type modeConfig struct {
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Cookie   CookieConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `env:"DB_HOST,default=localhost"`
	Port     string `env:"DB_PORT,default=3306"`
	User     string `env:"DB_USER,default=root"`
	Password string `env:"DB_PASS"`
	DBName   string `env:"DB_NAME,default=healthcare_booking"`
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"JWT_TTL,default=360h"`
}

// RedisConfig holds the session store connection
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0"`

	SessionPrefix string        `env:"SESSION_PREFIX,default=sess"`
	SessionTTL    time.Duration `env:"SESSION_TTL,default=24h"`
}

// CookieConfig holds session cookie settings
type CookieConfig struct {
	Secure   bool   `env:"COOKIE_SECURE,default=false"`
	SameSite string `env:"COOKIE_SAMESITE,default=Lax"`
	Domain   string `env:"COOKIE_DOMAIN"`
}

// SMSConfig holds the OTP gateway settings
type SMSConfig struct {
	URL     string        `env:"SMS_API_URL,default=https://api.managepoint.co/api/sms/send"`
	APIKey  string        `env:"SMS_API_KEY"`
	Timeout time.Duration `env:"SMS_TIMEOUT,default=10s"`
}

// PaymentConfig holds the Stripe settings
type PaymentConfig struct {
	StripeSecretKey string        `env:"STRIPE_SECRET_KEY"`
	StripeBaseURL   string        `env:"STRIPE_API_URL,default=https://api.stripe.com"`
	Currency        string        `env:"PAYMENT_CURRENCY,default=usd"`
	Timeout         time.Duration `env:"PAYMENT_TIMEOUT,default=15s"`
}

// MaintenanceConfig holds background job settings
type MaintenanceConfig struct {
	Schedule string `env:"MAINTENANCE_CRON,default=@every 1h"`
}

// SeedConfig holds the optional bootstrap admin
type SeedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	AdminName     string `env:"SEED_ADMIN_NAME,default=Administrator"`
}

const devJWTSecret = "dev_secret_change_me"

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️ .env file not found, using environment variables")
	}

	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		return nil, err
	}

	log.Infof("✅ Configuration loaded successfully [MODE: %s]", cfg.AppMode)
	return cfg, nil
}

// LoadFrom builds the configuration from an arbitrary lookuper
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.ProcessWith(ctx, cfg, l); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}

	// trim spaces for Windows compatibility
	cfg.AppMode = strings.TrimSpace(cfg.AppMode)
	if cfg.AppMode != "dev" && cfg.AppMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", cfg.AppMode)
	}

	var mode modeConfig
	if err := envconfig.ProcessWith(ctx, &mode, envconfig.PrefixLookuper(cfg.modePrefix(), l)); err != nil {
		return nil, fmt.Errorf("parsing %s env vars: %w", cfg.modePrefix(), err)
	}
	cfg.Database = mode.Database
	cfg.JWT = mode.JWT
	cfg.Redis = mode.Redis
	cfg.Cookie = mode.Cookie

	if cfg.JWT.Secret == "" {
		if cfg.IsProd() {
			return nil, fmt.Errorf("%sJWT_SECRET is required in prod mode", cfg.modePrefix())
		}
		cfg.JWT.Secret = devJWTSecret
	}

	return cfg, nil
}

func (c *Config) modePrefix() string {
	if c.IsProd() {
		return "PROD_"
	}
	return "DEV_"
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return c.ClientSiteURL
	}
	return c.AllowedOrigins
}
