package certificates

import (
	certsvc "portfolio-backend/internal/application/certificates"
	uploadsvc "portfolio-backend/internal/application/uploads"
	"portfolio-backend/internal/pkg/request"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for certificate endpoints.
type Handlers struct {
	Service *certsvc.Service
	Uploads *uploadsvc.Service
}

func (h *Handlers) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to fetch certificates")
	}
	return response.Success(c, items)
}

func (h *Handlers) Get(c *fiber.Ctx) error {
	cert, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err, "Failed to fetch certificate")
	}
	return response.Success(c, cert)
}

// uploadImage stores the optional "image" part; certificates may be images or PDFs.
func (h *Handlers) uploadImage(c *fiber.Ctx) (string, error) {
	fh := request.File(c, "image")
	if fh == nil {
		return "", nil
	}
	return h.Uploads.UploadFile(c.Context(), "certificates", fh, uploadsvc.ImagesOrPDF)
}

func (h *Handlers) Create(c *fiber.Ctx) error {
	var in certsvc.Input
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	url, err := h.uploadImage(c)
	if err != nil {
		return response.FromError(c, err, "Failed to upload certificate file")
	}
	cert, err := h.Service.Create(c.Context(), in, url)
	if err != nil {
		return response.FromError(c, err, "Failed to create certificate")
	}
	return response.SuccessCreated(c, cert)
}

func (h *Handlers) Update(c *fiber.Ctx) error {
	var in certsvc.Input
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	url, err := h.uploadImage(c)
	if err != nil {
		return response.FromError(c, err, "Failed to upload certificate file")
	}
	cert, err := h.Service.Update(c.Context(), c.Params("id"), in, url)
	if err != nil {
		return response.FromError(c, err, "Failed to update certificate")
	}
	return response.Success(c, cert)
}

func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		return response.FromError(c, err, "Failed to delete certificate")
	}
	return response.OK(c)
}
