package events

import (
	"context"

	"mpu-janitor/core/reconcile"

	"go.uber.org/zap"
)

// Service reconciles the bucket named by a creation event.
type Service struct {
	reconciler *reconcile.Reconciler
	opts       reconcile.Options
	observer   reconcile.Observer
	logger     *zap.Logger
}

// NewService creates a new events service.
func NewService(r *reconcile.Reconciler, opts reconcile.Options, obs reconcile.Observer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reconciler: r, opts: opts, observer: obs, logger: logger}
}

// Handle reconciles evt.BucketName and nothing else.
func (s *Service) Handle(ctx context.Context, evt *BucketCreatedEvent, logger *zap.Logger) reconcile.BucketOutcome {
	if logger == nil {
		logger = s.logger
	}
	logger.Info("Bucket created",
		zap.String("bucket", evt.BucketName),
		zap.String("event_time", evt.EventTime),
		zap.String("region", evt.Region),
		zap.String("actor_arn", evt.ActorARN),
		zap.String("actor_name", evt.ActorName),
	)

	return reconcile.Run(ctx, s.reconciler, evt.BucketName, s.opts, reconcile.TriggerEvent, s.observer)
}
