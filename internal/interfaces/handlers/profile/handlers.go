package profile

import (
	profilesvc "portfolio-backend/internal/application/profile"
	uploadsvc "portfolio-backend/internal/application/uploads"
	"portfolio-backend/internal/pkg/request"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const uploadFolder = "profile"

type Handlers struct {
	Service *profilesvc.Service
	Uploads *uploadsvc.Service
}

// Get GET /api/profile: the first profile row, or {} before one is saved.
func (h *Handlers) Get(c *fiber.Ctx) error {
	p, err := h.Service.Get(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to fetch profile")
	}
	if p == nil {
		return response.Success(c, fiber.Map{})
	}
	return response.Success(c, p)
}

// Upsert POST /api/profile (JSON or multipart with "data", "avatar", "cv")
func (h *Handlers) Upsert(c *fiber.Ctx) error {
	var in profilesvc.Input
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	var files profilesvc.Files
	if fh := request.File(c, "avatar"); fh != nil {
		url, err := h.Uploads.UploadFile(c.Context(), uploadFolder, fh, uploadsvc.Images)
		if err != nil {
			return response.FromError(c, err, "Failed to upload avatar")
		}
		files.AvatarURL = url
	}
	if fh := request.File(c, "cv"); fh != nil {
		url, err := h.Uploads.UploadFile(c.Context(), uploadFolder, fh, uploadsvc.Documents)
		if err != nil {
			return response.FromError(c, err, "Failed to upload CV")
		}
		files.CVURL = url
	}
	p, err := h.Service.Upsert(c.Context(), in, files)
	if err != nil {
		return response.FromError(c, err, "Failed to save profile")
	}
	return response.Success(c, p)
}
