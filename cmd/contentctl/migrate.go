package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saileshbalu94/ecommerce-ai/internal/database"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Create or update the tables and indexes the server needs.

The server does this on startup unless DB_AUTO_MIGRATE=false; run this
command before deploying with auto-migration disabled.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	cmd.Println("Migrations applied")
	return nil
}
