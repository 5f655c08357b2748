package config_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/notekeeper/internal/config"
)

var configKeys = []string{
	"APP_ENV", "LOG_LEVEL", "API_SERVICE_PORT", "API_GRPC_PORT",
	"DATABASE_DRIVER", "DATABASE_PORT", "SESSION_TTL", "REMEMBER_TTL",
	"SESSION_STORE", "COOKIE_SECURE", "BCRYPT_COST", "OTEL_ENDPOINT",
	"SESSION_CLEANUP_INTERVAL", "HEALTH_CHECK_INTERVAL",
}

// unsetEnv clears every key for the duration of the test
func unsetEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "8080", cfg.ApiServicePort)
	assert.Equal(t, "50052", cfg.ApiGrpcPort)
	assert.Equal(t, config.DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, int64(5432), cfg.DatabasePort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 365*24*time.Hour, cfg.RememberTTL)
	assert.Equal(t, config.SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.CookieSecure)
	assert.Empty(t, cfg.OTELEndpoint)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	unsetEnv(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_SERVICE_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_STORE", "database")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "9090", cfg.ApiServicePort)
	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, config.SessionStoreDatabase, cfg.SessionStore)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"malformed integer", "DATABASE_PORT", "invalid"},
		{"malformed duration", "SESSION_TTL", "forever"},
		{"unknown driver", "DATABASE_DRIVER", "oracle"},
		{"unknown session store", "SESSION_STORE", "memcached"},
		{"zero session ttl", "SESSION_TTL", "0s"},
		{"negative remember ttl", "REMEMBER_TTL", "-1h"},
		{"zero cleanup interval", "SESSION_CLEANUP_INTERVAL", "0s"},
		{"negative health check interval", "HEALTH_CHECK_INTERVAL", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := config.LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
