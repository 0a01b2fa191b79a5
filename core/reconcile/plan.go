package reconcile

import "context"

// PlanBatch runs a dry-run pass over buckets. Nothing is written whatever
// opts.DryRun says.
func PlanBatch(ctx context.Context, r *Reconciler, buckets []string, opts BatchOptions) *BatchReport {
	opts.DryRun = true
	return RunBatch(ctx, r, buckets, opts)
}

// Pending returns the buckets a plan found without an MPU abort rule.
func (p *BatchReport) Pending() []string {
	var out []string
	for _, o := range p.Outcomes {
		if o.Err == nil && o.Result != nil && o.Result.Action == ActionWouldCreate {
			out = append(out, o.Bucket)
		}
	}
	return out
}

// ApplyPlan reconciles the pending buckets of plan for real.
// Requires opts.Confirmed=true and opts.DryRun=false; otherwise it returns an
// empty report without touching storage. Each bucket is re-read, so one that
// gained a rule since the plan ends up as a noop.
func ApplyPlan(ctx context.Context, r *Reconciler, plan *BatchReport, opts BatchOptions) *BatchReport {
	if !opts.Confirmed || opts.DryRun || plan == nil {
		return &BatchReport{}
	}

	return RunBatch(ctx, r, plan.Pending(), opts)
}
