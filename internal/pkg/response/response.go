package response

import (
	"errors"

	"portfolio-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessBody is the acknowledgement returned by operations with no payload.
type SuccessBody struct {
	Success bool `json:"success"`
}

// Success sends data as a 200 OK JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// SuccessCreated sends data as a 201 Created JSON response.
func SuccessCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// OK sends {"success": true}.
func OK(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(SuccessBody{Success: true})
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(ErrorBody{Success: false, Error: message})
}

// Unauthorized sends 401 with the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}

// FromError maps service errors onto HTTP statuses. Anything unrecognised is
// logged and reported as 500 with the fallback message.
func FromError(c *fiber.Ctx, err error, fallback string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return Error(c, verr.Message, fiber.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		return Error(c, domain.ErrNotFound.Error(), fiber.StatusNotFound)
	case errors.Is(err, domain.ErrUnauthorized):
		return Unauthorized(c, domain.ErrUnauthorized.Error())
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(fallback)
	return Error(c, fallback, fiber.StatusInternalServerError)
}
