package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, 18, cfg.Billing.DefaultGSTRate)
	assert.Equal(t, "IN", cfg.Billing.PhoneRegion)
	assert.Equal(t, 10, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 1440, cfg.JWT.Expiration)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BILLING_DEFAULT_GST_RATE", "12")
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "5")
	t.Setenv("PHONE_REGION", "us")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Billing.DefaultGSTRate)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, "US", cfg.Billing.PhoneRegion)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_RejectsGSTOutOfRange(t *testing.T) {
	t.Setenv("BILLING_DEFAULT_GST_RATE", "140")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "medstore", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/medstore?sslmode=disable", c.DSN())
	assert.Equal(t, "postgres://x", DBConfig{DatabaseURL: "postgres://x"}.ConnectionString())
}
