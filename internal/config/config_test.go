package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 15*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, devJWTSecret, cfg.JWT.Secret)
	assert.Equal(t, "@every 1h", cfg.Maintenance.Schedule)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoadFrom_ModePrefix(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"APP_MODE":        "prod",
		"DEV_DB_HOST":     "dev-db",
		"PROD_DB_HOST":    "prod-db",
		"PROD_JWT_SECRET": "s3cret",
		"PROD_REDIS_ADDR": "redis:6379",
		"CLIENT_SITE_URL": "https://app.example",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "prod-db", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "https://app.example", cfg.GetAllowedOrigins())
}

func TestLoadFrom_ProdRequiresSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"APP_MODE": "prod",
	}))
	assert.ErrorContains(t, err, "PROD_JWT_SECRET")
}

func TestLoadFrom_InvalidMode(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"APP_MODE": "staging",
	}))
	assert.ErrorContains(t, err, "invalid APP_MODE")
}
