package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "REDIS_URL", "RATE_LIMIT_SHARED_WINDOW", "RATE_LIMIT_RPS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, time.Minute, cfg.SharedLimitWindow)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/loginapp?sslmode=disable")
	t.Setenv("RATE_LIMIT_SHARED_WINDOW", "5m")
	t.Setenv("RATE_LIMIT_AUTH_RPS", "2.5")
	t.Setenv("RATE_LIMIT_AUTH_BURST", "3")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres://u:p@localhost/loginapp?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, 5*time.Minute, cfg.SharedLimitWindow)
	assert.Equal(t, 2.5, cfg.RateLimitAuthRPS)
	assert.Equal(t, 3, cfg.RateLimitAuthBurst)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_CONNECT_RETRIES", "many")
	t.Setenv("RATE_LIMIT_SHARED_WINDOW", "forever")
	t.Setenv("RATE_LIMIT_RPS", "fast")

	cfg := Load()

	assert.Equal(t, 5, cfg.DBConnectRetries)
	assert.Equal(t, time.Minute, cfg.SharedLimitWindow)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
}
