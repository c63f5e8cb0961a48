package skills

import (
	skillsvc "portfolio-backend/internal/application/skills"
	"portfolio-backend/internal/pkg/request"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for skill endpoints. Level must be one of the
// four skill levels; anything else is a 400.
type Handlers struct {
	Service *skillsvc.Service
}

func (h *Handlers) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to fetch skills")
	}
	return response.Success(c, items)
}

func (h *Handlers) Get(c *fiber.Ctx) error {
	item, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err, "Failed to fetch skill")
	}
	return response.Success(c, item)
}

func (h *Handlers) Create(c *fiber.Ctx) error {
	var in skillsvc.Input
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	item, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return response.FromError(c, err, "Failed to create skill")
	}
	return response.SuccessCreated(c, item)
}

func (h *Handlers) Update(c *fiber.Ctx) error {
	var in skillsvc.Input
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	item, err := h.Service.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return response.FromError(c, err, "Failed to update skill")
	}
	return response.Success(c, item)
}

func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		return response.FromError(c, err, "Failed to delete skill")
	}
	return response.OK(c)
}
