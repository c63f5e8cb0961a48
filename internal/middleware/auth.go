package middleware

import (
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth lets the request through only when the session holds an admin
// with an id; otherwise it answers 401 before any handler runs.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return response.Unauthorized(c, domain.ErrUnauthorized.Error())
		}
		return c.Next()
	}
}

// GetUser returns the raw session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// CurrentUser decodes the session user, or returns nil when there is none.
func CurrentUser(c *fiber.Ctx) *SessionUser {
	m, ok := c.Locals(userLocal).(map[string]interface{})
	if !ok {
		return nil
	}
	id, _ := m["id"].(string)
	if id == "" {
		return nil
	}
	email, _ := m["email"].(string)
	return &SessionUser{ID: id, Email: email}
}
