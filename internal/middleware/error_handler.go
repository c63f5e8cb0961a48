package middleware

import (
	"errors"

	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler catches errors returned out of a handler chain. Fiber errors
// (unknown route, body too large) keep their own status; everything else is
// mapped like a service error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.Error(c, fe.Message, fe.Code)
	}
	return response.FromError(c, err, "Internal Server Error")
}
