package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppEnv         string     `env:"APP_ENV" envDefault:"development"`
	LogLevel       slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	ApiServicePort string     `env:"API_SERVICE_PORT" envDefault:"8080"`
	ApiGrpcPort    string     `env:"API_GRPC_PORT" envDefault:"50052"`

	DatabaseDriver     string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseHost       string `env:"DATABASE_HOST" envDefault:"db"`
	DatabasePort       int64  `env:"DATABASE_PORT" envDefault:"5432"`
	DatabaseUser       string `env:"DATABASE_USER" envDefault:"notekeeper_user"`
	DatabasePassword   string `env:"DATABASE_PASSWORD" envDefault:"notekeeper_password"`
	DatabaseName       string `env:"DATABASE_NAME" envDefault:"notekeeper_db"`
	SQLitePath         string `env:"SQLITE_PATH" envDefault:"notekeeper.db"`
	DatabaseMaxRetries int    `env:"DATABASE_MAX_RETRIES" envDefault:"30"`

	SessionSecret          string        `env:"SESSION_SECRET" envDefault:"notekeeper_secret"`
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RememberTTL            time.Duration `env:"REMEMBER_TTL" envDefault:"8760h"` // 365 days
	CookieSecure           bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SessionStore           string        `env:"SESSION_STORE" envDefault:"redis"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h"`

	RedisHost     string `env:"REDIS_HOST" envDefault:"redis"`
	RedisPort     int64  `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDatabase int64  `env:"REDIS_DATABASE" envDefault:"0"`

	BcryptCost          int           `env:"BCRYPT_COST" envDefault:"10"`
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL" envDefault:"15s"`

	OTELEndpoint    string `env:"OTEL_ENDPOINT"`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"notekeeper"`
}

// LoadConfig reads the configuration from the environment, applying defaults
// for every unset key.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	switch cfg.SessionStore {
	case SessionStoreRedis, SessionStoreDatabase:
	default:
		return nil, fmt.Errorf("unsupported SESSION_STORE %q", cfg.SessionStore)
	}

	// Each duration feeds a ticker or a session expiry
	for _, d := range []struct {
		key   string
		value time.Duration
	}{
		{"SESSION_TTL", cfg.SessionTTL},
		{"REMEMBER_TTL", cfg.RememberTTL},
		{"SESSION_CLEANUP_INTERVAL", cfg.SessionCleanupInterval},
		{"HEALTH_CHECK_INTERVAL", cfg.HealthCheckInterval},
	} {
		if d.value <= 0 {
			return nil, fmt.Errorf("%s must be positive, got %s", d.key, d.value)
		}
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	SessionStoreRedis    = "redis"
	SessionStoreDatabase = "database"
)
