package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8780", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 10*24*time.Hour, cfg.RefreshTokenTTL)
	assert.False(t, cfg.BunDebug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("BUNDEBUG", "true")
	t.Setenv("ACCESS_TOKEN_MINUTES", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://records.example.com")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.BunDebug)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://records.example.com"}, cfg.AllowedOrigins)
}

func TestGetEnvAsBoolInvalid(t *testing.T) {
	t.Setenv("BUNDEBUG", "not-a-bool")
	cfg := Load()
	assert.False(t, cfg.BunDebug)
}
