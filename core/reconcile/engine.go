package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mpu-janitor/core/storage"

	"go.uber.org/zap"
)

// Reconciler ensures a bucket carries an MPU abort rule.
type Reconciler struct {
	client storage.Client
	logger *zap.Logger
}

// New creates a Reconciler. A nil logger disables logging.
func New(client storage.Client, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{client: client, logger: logger}
}

// RuleIDFor returns the ID given to rules created with the given retention.
func RuleIDFor(days int32) string {
	return fmt.Sprintf("delete-incomplete-mpu-%ddays", days)
}

// NewAbortRule builds the enabled, bucket-wide MPU abort rule.
func NewAbortRule(days int32) storage.Rule {
	return storage.Rule{
		ID:     RuleIDFor(days),
		Status: storage.StatusEnabled,
		Filter: storage.Filter{},
		AbortIncompleteMultipartUpload: &storage.AbortIncompleteMultipartUpload{
			DaysAfterInitiation: days,
		},
	}
}

// Reconcile makes sure bucket has an MPU abort rule, creating one with
// opts.RetentionDays when none exists. Existing rules are never modified.
func (r *Reconciler) Reconcile(ctx context.Context, bucket string, opts Options) (*Result, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, ErrInvalidBucket
	}
	if opts.RetentionDays < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRetention, opts.RetentionDays)
	}

	days := opts.retentionDays()
	log := r.logger.With(
		zap.String("bucket", bucket),
		zap.Int32("retention_days", days),
		zap.Bool("dry_run", opts.DryRun),
	)

	current, err := r.fetch(ctx, bucket)
	if err != nil {
		log.Warn("Failed to read lifecycle configuration", zap.Error(err))
		return nil, err
	}

	result := &Result{
		Bucket:        bucket,
		RetentionDays: days,
		DryRun:        opts.DryRun,
	}

	if existing := current.MPUAbortRules(); len(existing) > 0 {
		result.Action = ActionNoop
		result.ExistingRuleID = existing[0].ID
		result.Rules = current.Rules

		if len(existing) > 1 {
			ids := make([]string, 0, len(existing))
			for _, rule := range existing {
				ids = append(ids, rule.ID)
			}
			result.Warnings = append(result.Warnings, Warning{
				Code:    WarningConfigurationAmbiguity,
				Message: fmt.Sprintf("bucket has %d rules aborting incomplete multipart uploads", len(existing)),
				RuleIDs: ids,
			})
			log.Warn("Multiple MPU abort rules found, leaving configuration unchanged",
				zap.Strings("rule_ids", ids))
		}

		log.Info("MPU abort rule already present",
			zap.String("action", string(result.Action)),
			zap.String("rule_id", result.ExistingRuleID))

		return result, nil
	}

	rule := NewAbortRule(days)
	desired := current.Clone()
	desired.Rules = append(desired.Rules, rule)

	result.ProposedRule = &rule
	result.Rules = desired.Rules

	if opts.DryRun {
		result.Action = ActionWouldCreate
		log.Info("Dry run: MPU abort rule would be created",
			zap.String("action", string(result.Action)),
			zap.String("rule_id", rule.ID))

		return result, nil
	}

	if err := r.client.PutLifecycleConfiguration(ctx, bucket, desired); err != nil {
		err = classify(bucket, "put", err)
		log.Error("Failed to write lifecycle configuration", zap.String("rule_id", rule.ID), zap.Error(err))

		return nil, err
	}

	result.Action = ActionCreate
	log.Info("MPU abort rule created",
		zap.String("action", string(result.Action)),
		zap.String("rule_id", rule.ID))

	return result, nil
}

// fetch reads the bucket's configuration, treating a missing one as empty.
func (r *Reconciler) fetch(ctx context.Context, bucket string) (*storage.Configuration, error) {
	cfg, err := r.client.GetLifecycleConfiguration(ctx, bucket)
	if errors.Is(err, storage.ErrNoLifecycleConfiguration) {
		return &storage.Configuration{}, nil
	}
	if err != nil {
		return nil, classify(bucket, "get", err)
	}
	if cfg == nil {
		return &storage.Configuration{}, nil
	}
	return cfg, nil
}

func classify(bucket, op string, err error) error {
	if errors.Is(err, storage.ErrBucketNotFound) {
		return &NotFoundError{Bucket: bucket, Err: err}
	}
	return &TransientError{Bucket: bucket, Op: op, Err: err}
}

// Run reconciles one bucket, times it and notifies obs.
func Run(ctx context.Context, r *Reconciler, bucket string, opts Options, trigger string, obs Observer) BucketOutcome {
	start := time.Now()
	result, err := r.Reconcile(ctx, bucket, opts)

	outcome := BucketOutcome{
		Bucket:   bucket,
		Trigger:  trigger,
		Result:   result,
		Err:      err,
		Duration: time.Since(start),
	}
	if obs != nil {
		obs(outcome)
	}

	return outcome
}
