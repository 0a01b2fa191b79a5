package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/feature/buckets"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// bucketsCmd lists each bucket's incomplete MPU rule without changing anything.
var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Show the incomplete multipart upload rule of every bucket",
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

		opts, err := a.reconcileOptions(false, 0)
		if err != nil {
			return err
		}

		svc := buckets.NewService(a.client, reconcile.New(a.client, a.logger), opts, nil, a.logger)
		statuses, err := svc.ListStatuses(ctx)
		if err != nil {
			return fmt.Errorf("failed to list buckets: %w", err)
		}

		printStatuses(cmd.OutOrStdout(), statuses)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(bucketsCmd)
}

func printStatuses(dest io.Writer, statuses []buckets.Status) {
	table := tablewriter.NewWriter(dest)
	table.SetHeader([]string{"Bucket", "MPU Rule", "Days", "Notes"})
	table.SetAutoWrapText(false)

	for _, s := range statuses {
		days := ""
		if s.DaysAfterInitiation > 0 {
			days = strconv.Itoa(int(s.DaysAfterInitiation))
		}

		rule := s.RuleID
		if s.State == buckets.StateMissing {
			rule = buckets.StateMissing
		}

		notes := s.Error
		if s.State == buckets.StateAmbiguous {
			notes = "more than one abort rule"
		}

		table.Append([]string{s.Name, rule, days, notes})
	}

	table.Render()
}
