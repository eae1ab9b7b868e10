package cli

import (
	"fmt"
	"os"

	"eldercare_billing/internal/config"
	"eldercare_billing/internal/logger"

	"github.com/spf13/cobra"
)

var Version = "dev"

// Execute runs the billing command line. With no subcommand it serves HTTP.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "billing",
		Short:         "Eldercare billing back office: invoices, payments, webhooks, jobs and reconciliation",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(jobsCmd())
	rootCmd.AddCommand(migrateCmd())

	return rootCmd
}

// loadConfig reads the environment and configures the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		_ = logger.Setup(logger.DefaultConfig())
		return nil, err
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, nil
}
