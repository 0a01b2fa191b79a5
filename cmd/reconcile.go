package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/report"
	"mpu-janitor/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunFlag        bool
	retentionDaysFlag int
	workersFlag       int
	bucketFlags       []string
	yesConfirm        bool
	jsonOutput        bool
)

// reconcileCmd adds the abort-incomplete-MPU rule to every bucket missing one.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Add the incomplete multipart upload rule where it is missing",
	Long: `Plans a dry run over every bucket (or the ones named with --bucket),
prints the decisions, asks for confirmation and applies them.

Existing lifecycle rules are always preserved. Buckets that fail are reported
and do not stop the others.

Examples:
  # Report only
  reconcile --dry-run

  # Apply with a 3 day window, no prompt
  reconcile --retention-days 3 --yes

  # Two specific buckets
  reconcile --bucket logs --bucket backups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Report decisions without writing")
	reconcileCmd.Flags().IntVar(&retentionDaysFlag, "retention-days", 0, "DaysAfterInitiation for created rules (default from RECONCILE_RETENTION_DAYS, then 7)")
	reconcileCmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent buckets (default from RECONCILE_WORKERS)")
	reconcileCmd.Flags().StringSliceVar(&bucketFlags, "bucket", nil, "Only reconcile this bucket (repeatable)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm writes (non-interactive)")
	reconcileCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print reports as JSON")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(ctx context.Context, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	callOpts, err := a.reconcileOptions(dryRunFlag, retentionDaysFlag)
	if err != nil {
		return err
	}

	buckets, err := targetBuckets(ctx, a.client, bucketFlags)
	if err != nil {
		return err
	}

	opts := reconcile.BatchOptions{
		Options: callOpts,
		Workers: a.cfg.Reconcile.Workers,
		Trigger: reconcile.TriggerBatch,
	}
	if workersFlag > 0 {
		opts.Workers = workersFlag
	}

	r := reconcile.New(a.client, a.logger)

	if opts.DryRun {
		a.logger.Info("Running in dry-run mode", zap.Int("buckets", len(buckets)))
		opts.Observer = a.observer()
		return printReport(out, reconcile.PlanBatch(ctx, r, buckets, opts))
	}

	a.logger.Info("Planning reconciliation...", zap.Int("buckets", len(buckets)))
	plan := reconcile.PlanBatch(ctx, r, buckets, opts)
	if err := printReport(out, plan); err != nil {
		return err
	}

	pending := plan.Pending()
	if len(pending) == 0 {
		a.logger.Info("No buckets need an incomplete multipart upload rule.")
		return nil
	}

	if !confirmWrites(in, out, len(pending)) {
		a.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	opts.Confirmed = true
	opts.Observer = a.observer()

	a.logger.Info("Applying rules...", zap.Int("buckets", len(pending)))
	applied := reconcile.ApplyPlan(ctx, r, plan, opts)
	if err := printReport(out, applied); err != nil {
		return err
	}

	a.logger.Info("Reconciliation finished",
		zap.Int("created", applied.Summary.Created),
		zap.Int("errors", applied.Summary.Errors()),
	)
	return nil
}

// targetBuckets returns the named buckets, or every bucket the credentials can list.
func targetBuckets(ctx context.Context, client storage.Client, named []string) ([]string, error) {
	if len(named) > 0 {
		return named, nil
	}

	infos, err := client.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	names := make([]string, len(infos))
	for i, b := range infos {
		names[i] = b.Name
	}
	return names, nil
}

// confirmWrites prompts the user for confirmation or uses the --yes flag.
func confirmWrites(in io.Reader, out io.Writer, n int) bool {
	if yesConfirm {
		fmt.Fprintln(out, "\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Fprintf(out, "\nType 'yes' to add the rule to %d bucket(s): ", n)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}

type outcomeView struct {
	reconcile.BucketOutcome
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

type reportView struct {
	Outcomes []outcomeView     `json:"outcomes"`
	Summary  reconcile.Summary `json:"summary"`
}

func printReport(out io.Writer, rep *reconcile.BatchReport) error {
	if !jsonOutput {
		report.Outcomes(out, rep.Outcomes)
		report.Summary(out, rep.Summary)
		return nil
	}

	view := reportView{Outcomes: make([]outcomeView, len(rep.Outcomes)), Summary: rep.Summary}
	for i, o := range rep.Outcomes {
		view.Outcomes[i] = outcomeView{
			BucketOutcome: o,
			Error:         o.ErrorMessage(),
			ErrorKind:     reconcile.ErrorKind(o.Err),
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
