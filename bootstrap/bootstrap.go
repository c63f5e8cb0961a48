package bootstrap

import (
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/interfaces/router"
	"portfolio-backend/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for Vercel serverless (api handler imports this
// package, not internal). Schema migration and admin seeding are left to
// cmd/api; a cold start only connects.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, true)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
