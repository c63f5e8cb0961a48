// Package pages serves the cached public page payloads.
package pages

import (
	pagesvc "portfolio-backend/internal/application/pages"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *pagesvc.Service
}

// Home GET /api/pages/home
func (h *Handlers) Home(c *fiber.Ctx) error {
	p, err := h.Service.Home(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to load home page")
	}
	if p == nil {
		return response.Success(c, fiber.Map{})
	}
	return response.Success(c, p)
}

// Sidebar GET /api/pages/sidebar
func (h *Handlers) Sidebar(c *fiber.Ctx) error {
	p, err := h.Service.Sidebar(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to load sidebar")
	}
	if p == nil {
		return response.Success(c, fiber.Map{})
	}
	return response.Success(c, p)
}

// About GET /api/pages/about
func (h *Handlers) About(c *fiber.Ctx) error {
	a, err := h.Service.About(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to load about page")
	}
	return response.Success(c, a)
}

// Contact GET /api/pages/contact
func (h *Handlers) Contact(c *fiber.Ctx) error {
	info, err := h.Service.Contact(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to load contact info")
	}
	return response.Success(c, info)
}

// Reviews GET /api/pages/reviews
func (h *Handlers) Reviews(c *fiber.Ctx) error {
	items, err := h.Service.ReviewList(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to load reviews")
	}
	return response.Success(c, items)
}
