package buckets

import (
	"context"
	"errors"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MPU rule states reported by Status.
const (
	StatePresent   = "present"
	StateMissing   = "missing"
	StateAmbiguous = "ambiguous"
	StateError     = "error"
)

const statusWorkers = 8

// Status is a bucket's MPU abort rule at a glance.
type Status struct {
	Name                string `json:"name"`
	State               string `json:"state"`
	RuleID              string `json:"rule_id,omitempty"`
	DaysAfterInitiation int32  `json:"days_after_initiation,omitempty"`
	Error               string `json:"error,omitempty"`
}

// Service inspects buckets and reconciles them on demand.
type Service struct {
	client     storage.Client
	reconciler *reconcile.Reconciler
	opts       reconcile.Options
	observer   reconcile.Observer
	logger     *zap.Logger
}

// NewService creates a new buckets service.
func NewService(client storage.Client, r *reconcile.Reconciler, opts reconcile.Options, obs reconcile.Observer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, reconciler: r, opts: opts, observer: obs, logger: logger}
}

// ListStatuses reports the MPU rule of every bucket. A bucket that cannot be
// read is reported with StateError and does not fail the listing.
func (s *Service) ListStatuses(ctx context.Context) ([]Status, error) {
	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, len(buckets))

	var g errgroup.Group
	g.SetLimit(statusWorkers)
	for i, b := range buckets {
		g.Go(func() error {
			statuses[i] = s.status(ctx, b.Name)
			return nil
		})
	}
	_ = g.Wait()

	return statuses, nil
}

func (s *Service) status(ctx context.Context, bucket string) Status {
	st := Status{Name: bucket}

	cfg, err := s.Lifecycle(ctx, bucket)
	if err != nil {
		st.State = StateError
		st.Error = err.Error()
		return st
	}

	rules := cfg.MPUAbortRules()
	switch {
	case len(rules) == 0:
		st.State = StateMissing
		return st
	case len(rules) > 1:
		st.State = StateAmbiguous
	default:
		st.State = StatePresent
	}
	st.RuleID = rules[0].ID
	st.DaysAfterInitiation = rules[0].AbortIncompleteMultipartUpload.DaysAfterInitiation

	return st
}

// Lifecycle returns the bucket's rules. A bucket without a configuration
// yields an empty one.
func (s *Service) Lifecycle(ctx context.Context, bucket string) (*storage.Configuration, error) {
	cfg, err := s.client.GetLifecycleConfiguration(ctx, bucket)
	if errors.Is(err, storage.ErrNoLifecycleConfiguration) {
		return &storage.Configuration{Rules: []storage.Rule{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &storage.Configuration{}
	}
	if cfg.Rules == nil {
		cfg.Rules = []storage.Rule{}
	}
	return cfg, nil
}

// Reconcile runs one reconciliation. Zero-valued overrides fall back to the
// service defaults.
func (s *Service) Reconcile(ctx context.Context, bucket string, opts reconcile.Options) reconcile.BucketOutcome {
	if opts.RetentionDays == 0 {
		opts.RetentionDays = s.opts.RetentionDays
	}
	opts.DryRun = opts.DryRun || s.opts.DryRun

	return reconcile.Run(ctx, s.reconciler, bucket, opts, reconcile.TriggerAPI, s.observer)
}
