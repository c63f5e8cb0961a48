package reviewcodes

import (
	"errors"

	codesvc "portfolio-backend/internal/application/reviewcodes"
	uploadsvc "portfolio-backend/internal/application/uploads"
	"portfolio-backend/internal/interfaces/handlers/reviews"
	"portfolio-backend/internal/pkg/request"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves invitation code management and the public review submission.
type Handlers struct {
	Service *codesvc.Service
	Uploads *uploadsvc.Service
}

func codeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, codesvc.ErrInvalidCode):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case errors.Is(err, codesvc.ErrCodeAlreadyUsed):
		return response.Error(c, err.Error(), fiber.StatusConflict)
	}
	return response.FromError(c, err, fallback)
}

// List GET /api/review-codes
func (h *Handlers) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to fetch review codes")
	}
	return response.Success(c, items)
}

type generateRequest struct {
	ClientName string `json:"client_name"`
}

// Generate POST /api/review-codes {client_name}
func (h *Handlers) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.Error(c, request.ErrInvalidBody.Error(), fiber.StatusBadRequest)
		}
	}
	rc, err := h.Service.Generate(c.Context(), req.ClientName)
	if err != nil {
		return response.FromError(c, err, "Failed to generate review code")
	}
	return response.SuccessCreated(c, rc)
}

// Delete DELETE /api/review-codes/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		return response.FromError(c, err, "Failed to delete review code")
	}
	return response.OK(c)
}

// Check GET /api/review-codes/check/:code: public; pre-fills the review form.
func (h *Handlers) Check(c *fiber.Ctx) error {
	rc, err := h.Service.Validate(c.Context(), c.Params("code"))
	if err != nil {
		return codeError(c, err, "Failed to check review code")
	}
	return response.Success(c, fiber.Map{"valid": true, "client_name": rc.ClientName})
}

// Submit POST /api/reviews/submit: public; {code, name, review, avatar} or
// multipart with an "avatar" file.
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var in codesvc.RedeemInput
	if err := request.Decode(c, &in); err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	if in.Code == "" || in.Name == "" || in.Review == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest)
	}
	// Reject a dead code before touching the bucket.
	if _, err := h.Service.Validate(c.Context(), in.Code); err != nil {
		return codeError(c, err, "Failed to submit review")
	}
	url, err := reviews.UploadAvatar(c, h.Uploads)
	if err != nil {
		return response.FromError(c, err, "Failed to upload avatar")
	}
	if url != "" {
		in.Avatar = url
	}
	if _, err := h.Service.Redeem(c.Context(), in); err != nil {
		return codeError(c, err, "Failed to submit review")
	}
	return response.OK(c)
}
