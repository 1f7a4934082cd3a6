package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "30m")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "not-a-duration")

	assert.Equal(t, 5*time.Minute, Load().CacheTTL)
}
