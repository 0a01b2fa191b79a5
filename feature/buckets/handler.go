package buckets

import (
	"errors"

	"mpu-janitor/core/logger"
	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/server"
	"mpu-janitor/core/storage"
	"mpu-janitor/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for buckets.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the bucket routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/buckets")
	group.Get("/", h.HandleList)
	group.Get("/:name/lifecycle", h.HandleLifecycle)
	group.Post("/:name/reconcile", h.HandleReconcile)
}

// HandleList returns every bucket with its MPU rule status.
// @Summary List Buckets
// @Description List buckets and whether each carries an abort-incomplete-multipart-upload rule.
// @Tags buckets
// @Produce json
// @Success 200 {array} Status "Bucket statuses"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /buckets [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	statuses, err := h.service.ListStatuses(c.Context())
	if err != nil {
		l.Error("Bucket listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(statuses)
}

// HandleLifecycle returns the current lifecycle rules of a bucket.
// @Summary Get Lifecycle
// @Description Get the current lifecycle rules of a bucket.
// @Tags buckets
// @Produce json
// @Param name path string true "Bucket name"
// @Success 200 {object} storage.Configuration "Lifecycle configuration"
// @Failure 404 {object} map[string]string "Bucket not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /buckets/{name}/lifecycle [get]
func (h *Handler) HandleLifecycle(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("bucket", name))

	cfg, err := h.service.Lifecycle(c.Context(), name)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, storage.ErrBucketNotFound) {
			status = fiber.StatusNotFound
		}
		l.Error("Lifecycle lookup failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(cfg)
}

// HandleReconcile reconciles a single bucket.
// @Summary Reconcile Bucket
// @Description Ensure a bucket has an abort-incomplete-multipart-upload rule.
// @Tags buckets
// @Produce json
// @Param name path string true "Bucket name"
// @Param dry_run query bool false "Report without writing"
// @Param retention_days query int false "DaysAfterInitiation for a created rule"
// @Success 200 {object} reconcile.Result "Reconcile result"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Bucket not found"
// @Failure 503 {object} map[string]string "Transient failure"
// @Router /buckets/{name}/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("bucket", name))

	days, err := reconcile.RetentionDays(utils.ToInt(c.Query("retention_days")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"bucket": name,
			"error":  err.Error(),
		})
	}

	opts := reconcile.Options{
		RetentionDays: days,
		DryRun:        utils.ToBool(c.Query("dry_run")),
	}

	outcome := h.service.Reconcile(c.Context(), name, opts)
	if outcome.Err != nil {
		l.Warn("Reconcile failed", zap.Error(outcome.Err))
		return c.Status(server.StatusFor(outcome.Err)).JSON(fiber.Map{
			"bucket": name,
			"error":  outcome.Err.Error(),
		})
	}

	return c.JSON(outcome.Result)
}
