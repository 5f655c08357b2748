package testutil

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/notekeeper/internal/config"
	"github.com/EgehanKilicarslan/notekeeper/internal/database"
)

// NewTestLogger returns a logger that discards everything
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// NewTestConfig returns a config suited to fast tests
func NewTestConfig() *config.Config {
	return &config.Config{
		AppEnv:         "test",
		LogLevel:       slog.LevelError,
		DatabaseDriver: config.DriverSQLite,
		SessionSecret:  "test_secret",
		SessionTTL:     time.Hour,
		RememberTTL:    24 * time.Hour,
		SessionStore:   config.SessionStoreDatabase,
		BcryptCost:     bcrypt.MinCost,
	}
}

// NewTestDB creates a new in-memory SQLite database with every migration applied
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(database.SQLiteDSN("file::memory:")), slog.LevelError)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, config.DriverSQLite, NewTestLogger()))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}
