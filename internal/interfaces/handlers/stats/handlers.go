package stats

import (
	statssvc "portfolio-backend/internal/application/stats"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *statssvc.Service
}

// Get GET /api/stats
func (h *Handlers) Get(c *fiber.Ctx) error {
	s, err := h.Service.Get(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to load stats")
	}
	return response.Success(c, s)
}
