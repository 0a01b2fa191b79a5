package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/report"
	"mpu-janitor/core/storage"

	"go.uber.org/zap"
)

const prompt = "Select a bucket index, 'a' for all, or 'exit': "

// Session is one interactive run.
type Session struct {
	client     storage.Client
	reconciler *reconcile.Reconciler
	opts       reconcile.BatchOptions
	in         *bufio.Scanner
	out        io.Writer
	logger     *zap.Logger
}

// NewSession creates a session reading selections from in and writing to out.
func NewSession(client storage.Client, r *reconcile.Reconciler, opts reconcile.BatchOptions, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.Trigger = reconcile.TriggerInteractive

	return &Session{
		client:     client,
		reconciler: r,
		opts:       opts,
		in:         bufio.NewScanner(in),
		out:        out,
		logger:     logger,
	}
}

// Run lists the buckets once and serves selections until exit or end of input.
// Only a failed listing is returned as an error; per-bucket failures are printed.
func (s *Session) Run(ctx context.Context) error {
	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}
	if len(buckets) == 0 {
		fmt.Fprintln(s.out, "No buckets found.")
		return nil
	}

	names := make([]string, len(buckets))
	for i, b := range buckets {
		names[i] = b.Name
	}
	s.printBuckets(names)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		sel, err := ParseSelection(s.in.Text(), len(names))
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}

		switch {
		case sel.Exit:
			return nil
		case sel.All:
			batch := reconcile.RunBatch(ctx, s.reconciler, names, s.opts)
			report.Outcomes(s.out, batch.Outcomes)
			report.Summary(s.out, batch.Summary)
		default:
			outcome := reconcile.Run(ctx, s.reconciler, names[sel.Index], s.opts.Options, s.opts.Trigger, s.opts.Observer)
			report.Outcomes(s.out, []reconcile.BucketOutcome{outcome})
		}
	}
}

func (s *Session) printBuckets(names []string) {
	mode := ""
	if s.opts.DryRun {
		mode = " (dry run)"
	}
	fmt.Fprintf(s.out, "Buckets%s:\n", mode)
	for i, name := range names {
		fmt.Fprintf(s.out, "  [%d] %s\n", i, name)
	}
}
