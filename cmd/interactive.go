package cmd

import (
	"context"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/feature/interactive"

	"github.com/spf13/cobra"
)

var (
	interactiveDryRun        bool
	interactiveRetentionDays int
)

// interactiveCmd reconciles buckets picked one at a time from a numbered list.
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Pick buckets to reconcile from a numbered list",
	Long: `Prints every bucket with an index and reads selections from stdin:
an index reconciles that bucket, 'a' reconciles all of them, 'exit' quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := setup(ctx)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		callOpts, err := a.reconcileOptions(interactiveDryRun, interactiveRetentionDays)
		if err != nil {
			return err
		}

		opts := reconcile.BatchOptions{
			Options:  callOpts,
			Workers:  a.cfg.Reconcile.Workers,
			Observer: a.observer(),
		}

		session := interactive.NewSession(a.client, reconcile.New(a.client, a.logger), opts, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)
		return session.Run(ctx)
	},
}

func init() {
	interactiveCmd.Flags().BoolVar(&interactiveDryRun, "dry-run", false, "Report decisions without writing")
	interactiveCmd.Flags().IntVar(&interactiveRetentionDays, "retention-days", 0, "DaysAfterInitiation for created rules (default 7)")

	RootCmd.AddCommand(interactiveCmd)
}
