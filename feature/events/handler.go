package events

import (
	"mpu-janitor/core/logger"
	"mpu-janitor/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for bucket events.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the event routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/events")
	group.Post("/bucket-created", h.HandleBucketCreated)
}

// HandleBucketCreated reconciles the bucket named in a CreateBucket event.
// @Summary Bucket Created Event
// @Description Accepts an EventBridge CloudTrail CreateBucket event and ensures the new bucket has an MPU abort rule.
// @Tags events
// @Accept json
// @Produce json
// @Param event body object true "EventBridge envelope"
// @Success 200 {object} reconcile.Result "Reconcile result"
// @Failure 400 {object} map[string]string "Malformed event"
// @Failure 404 {object} map[string]string "Bucket not found"
// @Failure 503 {object} map[string]string "Transient failure"
// @Router /events/bucket-created [post]
func (h *Handler) HandleBucketCreated(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	evt, err := Parse(c.Body())
	if err != nil {
		l.Warn("Rejected bucket event", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	outcome := h.service.Handle(c.Context(), evt, l)
	if outcome.Err != nil {
		return c.Status(server.StatusFor(outcome.Err)).JSON(fiber.Map{
			"bucket": evt.BucketName,
			"error":  outcome.Err.Error(),
		})
	}

	return c.JSON(outcome.Result)
}
