package server

import (
	"mpu-janitor/core/reconcile"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a reconcile error onto an HTTP status. Transient failures
// become 503 so event sources retry.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case reconcile.IsNotFound(err):
		return fiber.StatusNotFound
	case reconcile.IsTransient(err):
		return fiber.StatusServiceUnavailable
	case reconcile.ErrorKind(err) == "invalid":
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
