package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "unit-test-secret")

	var cfg Config
	require.NoError(t, LoadConfig(&cfg))

	assert.Equal(t, "traintrack", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.TokenStore.Backend)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 720*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "unit-test-secret")
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("TOKEN_STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("AUTH_ADMIN_USERNAME", "root")

	var cfg Config
	require.NoError(t, LoadConfig(&cfg))

	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, "redis", cfg.TokenStore.Backend)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "root", cfg.Auth.AdminUsername)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	var cfg Config
	assert.Error(t, LoadConfig(&cfg))
}
