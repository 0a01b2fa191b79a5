package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"mpu-janitor/core/audit"
	"mpu-janitor/core/logger"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var errAuditDisabled = errors.New("audit database is not available (check DATABASE_* settings)")

var (
	historyBucket string
	historyLimit  int
)

// historyCmd prints persisted reconcile outcomes.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded reconcile outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Database.Enabled {
			return errAuditDisabled
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		store := audit.Open(ctx, cfg.Database, logg)
		if store == nil {
			return errAuditDisabled
		}

		records, err := store.List(ctx, audit.Filter{Bucket: historyBucket, Limit: historyLimit})
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}

		printHistory(cmd.OutOrStdout(), records)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyBucket, "bucket", "", "Only show this bucket")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of records")

	RootCmd.AddCommand(historyCmd)
}

func printHistory(dest io.Writer, records []audit.Record) {
	table := tablewriter.NewWriter(dest)
	table.SetHeader([]string{"Time", "Bucket", "Action", "Rule", "Trigger", "Dry Run", "Error"})
	table.SetAutoWrapText(false)

	for _, r := range records {
		action := r.Action
		if r.ErrorKind != "" {
			action = r.ErrorKind
		}
		table.Append([]string{
			r.CreatedAt.Format(time.RFC3339),
			r.Bucket,
			action,
			r.RuleID,
			r.Trigger,
			strconv.FormatBool(r.DryRun),
			r.Error,
		})
	}

	table.Render()
}
