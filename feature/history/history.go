// Package history serves persisted reconcile audit records.
package history

import (
	"context"

	"mpu-janitor/core/audit"
	"mpu-janitor/core/logger"
	"mpu-janitor/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Service reads audit records.
type Service struct {
	store  *audit.Store
	logger *zap.Logger
}

// NewService creates a new history service. store may be nil when auditing is off.
func NewService(store *audit.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// List returns records newest first.
func (s *Service) List(ctx context.Context, f audit.Filter) ([]audit.Record, error) {
	return s.store.List(ctx, f)
}

// Handler handles HTTP requests for history.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/history", h.HandleList)
}

// HandleList returns audit records.
// @Summary Reconcile History
// @Description List persisted reconcile outcomes, newest first.
// @Tags history
// @Produce json
// @Param bucket query string false "Only records for this bucket"
// @Param limit query int false "Maximum number of records (default 50)"
// @Success 200 {array} audit.Record "Audit records"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.List(c.Context(), audit.Filter{
		Bucket: c.Query("bucket"),
		Limit:  utils.ToInt(c.Query("limit")),
	})
	if err != nil {
		l.Error("History lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(records)
}

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new history feature.
func NewFeature(store *audit.Store, logger *zap.Logger) *Feature {
	svc := NewService(store, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "history"
}

// IsEnabled reports whether an audit store is configured.
func (f *Feature) IsEnabled() bool {
	return f.service.store != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
