package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	AdminPath = "/admin"
	LoginPath = "/admin/login"
)

// SessionGate guards admin pages: anonymous visitors are sent to the login
// page and signed-in admins are sent away from it. Must run after Session.
func SessionGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := strings.TrimRight(c.Path(), "/")
		signedIn := CurrentUser(c) != nil

		switch {
		case path == LoginPath:
			if signedIn {
				return c.Redirect(AdminPath, fiber.StatusFound)
			}
		case path == AdminPath || strings.HasPrefix(path, AdminPath+"/"):
			if !signedIn {
				return c.Redirect(LoginPath, fiber.StatusFound)
			}
		}
		return c.Next()
	}
}
