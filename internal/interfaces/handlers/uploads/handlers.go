package uploads

import (
	uploadsvc "portfolio-backend/internal/application/uploads"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Folders that browser-side uploads may target.
var Folders = map[string]bool{
	"projects":     true,
	"certificates": true,
	"reviews":      true,
	"profile":      true,
}

type Handlers struct {
	Service *uploadsvc.Service
}

type signRequest struct {
	FileName string `json:"file_name"`
	Folder   string `json:"folder"`
}

// Sign POST /api/uploads/sign: returns a signed URL the admin UI uploads to directly.
func (h *Handlers) Sign(c *fiber.Ctx) error {
	var req signRequest
	if err := c.BodyParser(&req); err != nil || req.FileName == "" {
		return response.Error(c, "file_name is required", fiber.StatusBadRequest)
	}
	if !Folders[req.Folder] {
		return response.Error(c, "Invalid upload folder", fiber.StatusBadRequest)
	}
	res, err := h.Service.GetSignedUploadURL(c.Context(), req.Folder, req.FileName)
	if err != nil {
		return response.FromError(c, err, "Failed to generate upload URL")
	}
	return response.Success(c, res)
}
