package projects

import (
	projectsvc "portfolio-backend/internal/application/projects"
	uploadsvc "portfolio-backend/internal/application/uploads"
	"portfolio-backend/internal/pkg/request"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const uploadFolder = "projects"

// Handlers holds dependencies for project endpoints.
type Handlers struct {
	Service *projectsvc.Service
	Uploads *uploadsvc.Service
}

// List GET /api/projects
func (h *Handlers) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to fetch projects")
	}
	return response.Success(c, items)
}

// Get GET /api/projects/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	p, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err, "Failed to fetch project")
	}
	return response.Success(c, p)
}

// uploadImages stores the "images" parts, in order.
func (h *Handlers) uploadImages(c *fiber.Ctx) ([]string, error) {
	files := request.Files(c, "images")
	if len(files) == 0 {
		return nil, nil
	}
	return h.Uploads.UploadFiles(c.Context(), uploadFolder, files, uploadsvc.Images)
}

// Create POST /api/projects (JSON or multipart with "data" + "images")
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in projectsvc.Input
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	urls, err := h.uploadImages(c)
	if err != nil {
		return response.FromError(c, err, "Failed to upload images")
	}
	p, err := h.Service.Create(c.Context(), in, urls)
	if err != nil {
		return response.FromError(c, err, "Failed to create project")
	}
	return response.SuccessCreated(c, p)
}

// Update PUT /api/projects/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	var in projectsvc.Input
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	urls, err := h.uploadImages(c)
	if err != nil {
		return response.FromError(c, err, "Failed to upload images")
	}
	p, err := h.Service.Update(c.Context(), c.Params("id"), in, urls)
	if err != nil {
		return response.FromError(c, err, "Failed to update project")
	}
	return response.Success(c, p)
}

// Delete DELETE /api/projects/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		return response.FromError(c, err, "Failed to delete project")
	}
	return response.OK(c)
}
