// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "file", cfg.Cart.Storage)
	assert.Equal(t, 30*time.Minute, cfg.Cart.IdleTTL)
	assert.Equal(t, "100", cfg.Pricing.FreeShippingThreshold.String())
	assert.Equal(t, "9.99", cfg.Pricing.ShippingFee.String())
	assert.Equal(t, "0.08", cfg.Pricing.TaxRate.String())
	assert.Equal(t, "EPAYTEST", cfg.Payment.Esewa.ProductCode)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CART_STORAGE", "memory")
	t.Setenv("PRICING_TAX_RATE", "0.1")
	t.Setenv("PAYMENT_ESEWA_PRODUCT_CODE", "MERCHANT")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SMTP_HOST", "mail.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cart.Storage)
	assert.Equal(t, "0.1", cfg.Pricing.TaxRate.String())
	assert.Equal(t, "MERCHANT", cfg.Payment.Esewa.ProductCode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "mail.example", cfg.Email.SMTPHost)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	t.Run("unknown cart storage", func(t *testing.T) {
		cfg := base()
		cfg.Cart.Storage = "redis"
		assert.Error(t, cfg.Validate())
	})

	t.Run("stripe without key", func(t *testing.T) {
		cfg := base()
		cfg.Payment.Provider = "stripe"
		assert.Error(t, cfg.Validate())
	})

	t.Run("database cart storage without database", func(t *testing.T) {
		cfg := base()
		cfg.Cart.Storage = "database"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires real secrets", func(t *testing.T) {
		cfg := base()
		cfg.Environment = "production"
		assert.Error(t, cfg.Validate())

		cfg.JWT.SecretKey = "s3cret"
		assert.Error(t, cfg.Validate(), "test merchant code")

		cfg.Payment.Esewa.ProductCode = "LIVE"
		assert.NoError(t, cfg.Validate())
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "soundwave", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=soundwave sslmode=disable", d.DSN())
}
