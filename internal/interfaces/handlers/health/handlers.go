package health

import (
	healthsvc "portfolio-backend/internal/application/health"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ServiceName is reported by /health/json.
const ServiceName = "portfolio-api"

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Collector      *healthsvc.Collector
	HealthAdminKey string
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := h.Collector.Collect(c.Context())
	return c.JSON(fiber.Map{
		"service":      ServiceName,
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors GET /health/errors: the most recent 5xx responses.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Collector.Rdb == nil {
		return c.JSON([]interface{}{})
	}
	entries, err := healthsvc.Errors(c.Context(), h.Collector.Rdb)
	if err != nil {
		log.Warn().Err(err).Msg("health: error log read failed")
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	return c.JSON(entries)
}

// Reset GET /reset?key=HEALTH_ADMIN_KEY
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden)
	}
	if h.Collector.Rdb == nil {
		return response.Error(c, "Redis is not configured", fiber.StatusServiceUnavailable)
	}
	if err := healthsvc.Reset(c.Context(), h.Collector.Rdb); err != nil {
		return response.FromError(c, err, "Failed to reset stats")
	}
	return response.OK(c)
}
