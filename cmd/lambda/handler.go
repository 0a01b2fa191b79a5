package main

import (
	"context"

	"mpu-janitor/core/reconcile"
	"mpu-janitor/feature/events"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

type handler struct {
	service *events.Service
	logger  *zap.Logger
}

func newHandler(svc *events.Service, logger *zap.Logger) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &handler{service: svc, logger: logger}
}

// Handle returns an error only for transient failures, so the async invoke
// retry policy retries those and nothing else.
func (h *handler) Handle(ctx context.Context, envelope lambdaevents.CloudWatchEvent) (*reconcile.Result, error) {
	l := h.logger.With(zap.String("event_id", envelope.ID))

	evt, err := events.FromCloudWatchEvent(envelope)
	if err != nil {
		l.Error("Ignoring unusable event", zap.Error(err))
		return nil, nil
	}

	outcome := h.service.Handle(ctx, evt, l)
	switch {
	case outcome.Err == nil:
		return outcome.Result, nil
	case reconcile.IsTransient(outcome.Err):
		l.Error("Transient failure, event will be retried", zap.String("bucket", evt.BucketName), zap.Error(outcome.Err))
		return nil, outcome.Err
	default:
		l.Warn("Bucket not reconciled",
			zap.String("bucket", evt.BucketName),
			zap.String("kind", reconcile.ErrorKind(outcome.Err)),
			zap.Error(outcome.Err),
		)
		return nil, nil
	}
}
