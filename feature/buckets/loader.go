package buckets

import (
	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new buckets feature.
func NewFeature(client storage.Client, r *reconcile.Reconciler, opts reconcile.Options, obs reconcile.Observer, logger *zap.Logger) *Feature {
	svc := NewService(client, r, opts, obs, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "buckets"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
