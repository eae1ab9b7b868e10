package cli

import (
	"fmt"

	"eldercare_billing/internal/adapter/persistence/repository"
	"eldercare_billing/internal/infrastructure/database"
	"eldercare_billing/internal/logger"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the ledger tables in Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.NewPostgresDB(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := repository.MigrateLedger(db); err != nil {
				return fmt.Errorf("migrate ledger: %w", err)
			}
			log := logger.WithComponent("cli.migrate")
			log.Info().Msg("ledger schema up to date")
			return nil
		},
	}
}
