// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/storage"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Server    ServerConfig    `envconfig:"SERVER"`
	Database  DatabaseConfig  `envconfig:"DB"`
	Cart      CartConfig      `envconfig:"CART"`
	Pricing   PricingConfig   `envconfig:"PRICING"`
	Orders    OrdersConfig    `envconfig:"ORDERS"`
	Payment   PaymentConfig   `envconfig:"PAYMENT"`
	JWT       JWTConfig       `envconfig:"JWT"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	AWS       AWSConfig       `envconfig:"AWS"`
	Email     EmailConfig     `envconfig:"SMTP"`
	I18n      I18nConfig      `envconfig:"I18N"`
	Frontend  FrontendConfig  `envconfig:"FRONTEND"`
}

type ServerConfig struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	Host          string        `envconfig:"HOST" default:"localhost"`
	PublicURL     string        `envconfig:"PUBLIC_URL" default:"http://localhost:8080"`
	ReadTimeout   time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout  time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout   time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	SessionCookie string        `envconfig:"SESSION_COOKIE" default:"soundwave_session"`
	CORSOrigins   []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
}

type DatabaseConfig struct {
	Enabled      bool   `envconfig:"ENABLED" default:"false"`
	Host         string `envconfig:"HOST" default:"localhost"`
	Port         string `envconfig:"PORT" default:"5432"`
	User         string `envconfig:"USER" default:"postgres"`
	Password     string `envconfig:"PASSWORD"`
	Database     string `envconfig:"NAME" default:"soundwave"`
	SSLMode      string `envconfig:"SSL_MODE" default:"disable"`
	MaxOpenConns int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns int    `envconfig:"MAX_IDLE_CONNS" default:"25"`
	MaxLifetime  int    `envconfig:"MAX_LIFETIME" default:"300"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"silent"`
}

// CartConfig selects where cart snapshots live and how long idle carts stay
// in memory.
type CartConfig struct {
	Storage       string        `envconfig:"STORAGE" default:"file"`
	Dir           string        `envconfig:"DIR" default:"./data/carts"`
	S3Prefix      string        `envconfig:"S3_PREFIX" default:"carts"`
	WriteTimeout  time.Duration `envconfig:"WRITE_TIMEOUT" default:"5s"`
	IdleTTL       time.Duration `envconfig:"IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"5m"`
}

type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"FREE_SHIPPING_THRESHOLD" default:"100"`
	ShippingFee           decimal.Decimal `envconfig:"SHIPPING_FEE" default:"9.99"`
	TaxRate               decimal.Decimal `envconfig:"TAX_RATE" default:"0.08"`
}

// OrdersConfig points the checkout at an order-creation endpoint. An empty
// endpoint creates orders in-process.
type OrdersConfig struct {
	Endpoint string        `envconfig:"ENDPOINT"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"15s"`
}

type PaymentConfig struct {
	Provider string       `envconfig:"PROVIDER" default:"esewa"`
	Esewa    EsewaConfig  `envconfig:"ESEWA"`
	Stripe   StripeConfig `envconfig:"STRIPE"`
}

type EsewaConfig struct {
	FormURL     string `envconfig:"FORM_URL" default:"https://rc-epay.esewa.com.np/api/epay/main/v2/form"`
	ProductCode string `envconfig:"PRODUCT_CODE" default:"EPAYTEST"`
	SecretKey   string `envconfig:"SECRET_KEY" default:"8gBm/:&EnhH.1/q"`
}

type StripeConfig struct {
	SecretKey string `envconfig:"SECRET_KEY"`
	Currency  string `envconfig:"CURRENCY" default:"usd"`
}

type JWTConfig struct {
	SecretKey   string        `envconfig:"SECRET" default:"your-secret-key-change-in-production"`
	CallbackTTL time.Duration `envconfig:"CALLBACK_TTL" default:"1h"`
}

type RateLimitConfig struct {
	RPS            float64 `envconfig:"RPS" default:"10"`
	Burst          int     `envconfig:"BURST" default:"20"`
	CheckoutPerMin int     `envconfig:"CHECKOUT_PER_MIN" default:"10"`
}

type AWSConfig struct {
	Region          string `envconfig:"REGION" default:"us-east-1"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	S3Bucket        string `envconfig:"S3_BUCKET" default:"soundwave-carts"`
}

type EmailConfig struct {
	SMTPHost     string `envconfig:"HOST"`
	SMTPPort     string `envconfig:"PORT" default:"587"`
	SMTPUsername string `envconfig:"USERNAME"`
	SMTPPassword string `envconfig:"PASSWORD"`
	FromEmail    string `envconfig:"FROM_EMAIL" default:"noreply@soundwave.store"`
	FromName     string `envconfig:"FROM_NAME" default:"SoundWave"`
	ContactInbox string `envconfig:"CONTACT_INBOX" default:"hello@soundwave.store"`
}

type I18nConfig struct {
	DefaultLocale string `envconfig:"DEFAULT_LOCALE" default:"en"`
}

type FrontendConfig struct {
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:5173"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	return &cfg, cfg.Validate()
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) Validate() error {
	if _, err := storage.ParseDriver(c.Cart.Storage); err != nil {
		return err
	}

	switch models.PaymentProvider(c.Payment.Provider) {
	case models.PaymentProviderEsewa:
	case models.PaymentProviderStripe:
		if c.Payment.Stripe.SecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY is required when PAYMENT_PROVIDER is stripe")
		}
	default:
		return fmt.Errorf("unknown payment provider %q", c.Payment.Provider)
	}

	if c.Pricing.TaxRate.IsNegative() || c.Pricing.ShippingFee.IsNegative() || c.Pricing.FreeShippingThreshold.IsNegative() {
		return fmt.Errorf("pricing settings must not be negative")
	}

	if c.Cart.Storage == string(storage.DriverDatabase) && !c.Database.Enabled {
		return fmt.Errorf("CART_STORAGE=database requires DB_ENABLED=true")
	}

	if !c.IsProduction() {
		return nil
	}

	if c.JWT.SecretKey == defaultJWTSecret {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Enabled && c.Database.Password == "" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Payment.Provider == string(models.PaymentProviderEsewa) && c.Payment.Esewa.ProductCode == "EPAYTEST" {
		return fmt.Errorf("eSewa test merchant code must not be used in production")
	}

	return nil
}
