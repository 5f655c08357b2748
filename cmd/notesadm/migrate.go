package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/EgehanKilicarslan/notekeeper/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// ConnectDatabase already migrates up.
		db, err := database.ConnectDatabase(cfg, slog.Default())
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		cmd.Println("Database is up to date.")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations have been applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		dialector, err := database.Dialector(cfg)
		if err != nil {
			return err
		}
		db, err := database.Open(dialector, cfg.LogLevel)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		return database.MigrationStatus(db, cfg.DatabaseDriver, slog.Default())
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
