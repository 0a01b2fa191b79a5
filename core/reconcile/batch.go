package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchOptions tunes RunBatch.
type BatchOptions struct {
	Options

	// Workers bounds concurrent reconciliations. Values below 1 run sequentially.
	Workers int

	// Trigger is recorded on every outcome.
	Trigger string

	// Confirmed must be set for ApplyPlan to write.
	Confirmed bool

	// Observer, if set, is called once per bucket.
	Observer Observer
}

// Summary counts outcomes of a batch.
type Summary struct {
	Total       int `json:"total"`
	Created     int `json:"created"`
	WouldCreate int `json:"would_create"`
	Noop        int `json:"noop"`
	NotFound    int `json:"not_found"`
	Transient   int `json:"transient"`
	Failed      int `json:"failed"`
	Ambiguous   int `json:"ambiguous"`
}

func (s *Summary) add(o BucketOutcome) {
	s.Total++
	if o.Err != nil {
		switch {
		case IsNotFound(o.Err):
			s.NotFound++
		case IsTransient(o.Err):
			s.Transient++
		default:
			s.Failed++
		}
		return
	}

	switch o.Result.Action {
	case ActionCreate:
		s.Created++
	case ActionWouldCreate:
		s.WouldCreate++
	case ActionNoop:
		s.Noop++
	}
	if len(o.Result.Warnings) > 0 {
		s.Ambiguous++
	}
}

// Errors returns the number of buckets that failed for any reason.
func (s Summary) Errors() int {
	return s.NotFound + s.Transient + s.Failed
}

// BatchReport holds the outcomes of a batch in input order.
type BatchReport struct {
	Outcomes []BucketOutcome `json:"outcomes"`
	Summary  Summary         `json:"summary"`
}

// RunBatch reconciles every bucket. Per-bucket failures are recorded in the
// report and never stop the remaining buckets.
func RunBatch(ctx context.Context, r *Reconciler, buckets []string, opts BatchOptions) *BatchReport {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]BucketOutcome, len(buckets))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, bucket := range buckets {
		g.Go(func() error {
			outcomes[i] = Run(ctx, r, bucket, opts.Options, opts.Trigger, opts.Observer)
			return nil
		})
	}
	_ = g.Wait()

	report := &BatchReport{Outcomes: outcomes}
	for _, o := range outcomes {
		report.Summary.add(o)
	}

	return report
}
