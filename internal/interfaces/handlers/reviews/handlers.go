package reviews

import (
	reviewsvc "portfolio-backend/internal/application/reviews"
	uploadsvc "portfolio-backend/internal/application/uploads"
	"portfolio-backend/internal/pkg/request"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for admin review endpoints.
type Handlers struct {
	Service *reviewsvc.Service
	Uploads *uploadsvc.Service
}

func (h *Handlers) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to fetch reviews")
	}
	return response.Success(c, items)
}

func (h *Handlers) Get(c *fiber.Ctx) error {
	r, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err, "Failed to fetch review")
	}
	return response.Success(c, r)
}

// UploadAvatar stores the optional "avatar" part under reviews/.
// Also used by the public submission endpoint.
func UploadAvatar(c *fiber.Ctx, uploads *uploadsvc.Service) (string, error) {
	fh := request.File(c, "avatar")
	if fh == nil {
		return "", nil
	}
	return uploads.UploadFile(c.Context(), "reviews", fh, uploadsvc.Images)
}

func (h *Handlers) Create(c *fiber.Ctx) error {
	var in reviewsvc.Input
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	url, err := UploadAvatar(c, h.Uploads)
	if err != nil {
		return response.FromError(c, err, "Failed to upload avatar")
	}
	r, err := h.Service.Create(c.Context(), in, url)
	if err != nil {
		return response.FromError(c, err, "Failed to create review")
	}
	return response.SuccessCreated(c, r)
}

func (h *Handlers) Update(c *fiber.Ctx) error {
	var in reviewsvc.Input
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	url, err := UploadAvatar(c, h.Uploads)
	if err != nil {
		return response.FromError(c, err, "Failed to upload avatar")
	}
	r, err := h.Service.Update(c.Context(), c.Params("id"), in, url)
	if err != nil {
		return response.FromError(c, err, "Failed to update review")
	}
	return response.Success(c, r)
}

func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		return response.FromError(c, err, "Failed to delete review")
	}
	return response.OK(c)
}
