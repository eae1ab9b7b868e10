package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"eldercare_billing/internal/domain/entities"

	"github.com/spf13/cobra"
)

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run drift-correction jobs or inspect their last report",
	}
	cmd.AddCommand(jobsRunCmd())
	cmd.AddCommand(jobsLastCmd())
	return cmd
}

func jobsRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "run [subscription-sync|payment-sync|invoice-generation]",
		Short:     "Run one job now and print its report",
		Args:      cobra.ExactArgs(1),
		ValidArgs: jobNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJobs(cmd, func(ctx context.Context, a *app) (any, error) {
				report, err := a.jobs.Run(ctx, entities.JobName(args[0]))
				if err != nil {
					return nil, err
				}
				if report.Alert {
					cmd.PrintErrf("job %s reported %d failures\n", report.Name, report.Failed)
				}
				return report, nil
			})
		},
	}
}

func jobsLastCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "last [job]",
		Short:     "Print the last stored report of a job",
		Args:      cobra.ExactArgs(1),
		ValidArgs: jobNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJobs(cmd, func(ctx context.Context, a *app) (any, error) {
				report, found, err := a.jobs.Last(ctx, entities.JobName(args[0]))
				if err != nil {
					return nil, err
				}
				if !found {
					return nil, fmt.Errorf("job %s has no stored report", args[0])
				}
				return report, nil
			})
		},
	}
}

func withJobs(cmd *cobra.Command, fn func(ctx context.Context, a *app) (any, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Jobs triggered from the command line never start the scheduler.
	cfg.SchedulerEnabled = false

	ctx := cmd.Context()
	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	out, err := fn(ctx, a)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func jobNames() []string {
	return []string{
		string(entities.JobSubscriptionSync),
		string(entities.JobPaymentSync),
		string(entities.JobInvoiceGeneration),
	}
}
