package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/EgehanKilicarslan/notekeeper/internal/config"
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

// ConnectDatabase opens the configured store, retrying until it answers a
// ping, and applies pending migrations.
func ConnectDatabase(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("🔌 [Database] Connecting...",
		"driver", cfg.DatabaseDriver,
		"host", cfg.DatabaseHost,
		"port", cfg.DatabasePort,
		"database", cfg.DatabaseName,
	)

	maxRetries := cfg.DatabaseMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	retryDelay := 2 * time.Second

	var db *gorm.DB
	for i := 0; i < maxRetries; i++ {
		db, err = Open(dialector, cfg.LogLevel)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			logger.Warn("⏳ [Database] Connection failed, retrying...",
				"attempt", i+1,
				"max_retries", maxRetries,
				"retry_in", retryDelay,
				"error", err,
			)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s after %d attempts: %w", cfg.DatabaseDriver, maxRetries, err)
	}

	logger.Info("✅ [Database] Database connection established")

	logger.Info("🔄 [Database] Running migrations...")
	if err := Migrate(db, cfg.DatabaseDriver, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("✅ [Database] Migrations completed successfully")

	return db, nil
}

// Dialector builds the gorm dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
			cfg.DatabaseHost,
			cfg.DatabaseUser,
			cfg.DatabasePassword,
			cfg.DatabaseName,
			cfg.DatabasePort,
		)
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DatabaseUser,
			cfg.DatabasePassword,
			cfg.DatabaseHost,
			cfg.DatabasePort,
			cfg.DatabaseName,
		)
		return mysql.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(SQLiteDSN(cfg.SQLitePath)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

// SQLiteDSN turns on foreign key enforcement, which SQLite leaves off by default
func SQLiteDSN(path string) string {
	return path + "?_foreign_keys=on"
}

// Open connects through dialector and verifies the connection with a ping.
// Constraint violations are translated to gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated.
func Open(dialector gorm.Dialector, level slog.Level) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	switch {
	case level <= slog.LevelDebug:
		logMode = gormlogger.Info
	case level >= slog.LevelError:
		logMode = gormlogger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logMode,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	if dialector.Name() == "sqlite" {
		// SQLite serialises writers; one connection also keeps :memory: databases alive.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate applies every pending migration for driver
func Migrate(gormDB *gorm.DB, driver string, logger *slog.Logger) error {
	sqlDB, dir, err := prepareGoose(gormDB, driver, logger)
	if err != nil {
		return err
	}

	if err := goose.Up(sqlDB, dir); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	return nil
}

// MigrationStatus logs the applied state of every migration for driver
func MigrationStatus(gormDB *gorm.DB, driver string, logger *slog.Logger) error {
	sqlDB, dir, err := prepareGoose(gormDB, driver, logger)
	if err != nil {
		return err
	}

	if err := goose.Status(sqlDB, dir); err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	return nil
}

func prepareGoose(gormDB *gorm.DB, driver string, logger *slog.Logger) (*sql.DB, string, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	dialect, ok := gooseDialects[driver]
	if !ok {
		return nil, "", fmt.Errorf("unsupported database driver %q", driver)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&gooseLogger{logger: logger})

	if err := goose.SetDialect(dialect); err != nil {
		return nil, "", fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return sqlDB, path.Join("migrations", driver), nil
}

var gooseDialects = map[string]string{
	config.DriverPostgres: "postgres",
	config.DriverMySQL:    "mysql",
	config.DriverSQLite:   "sqlite3",
}

// gooseLogger routes goose output through slog
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info("[Migrations] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error("[Migrations] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
