package main

import (
	"context"
	"time"

	"portfolio-backend/internal/application/auth"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/interfaces/router"
	"portfolio-backend/internal/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}

	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		panic("app create: " + err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := router.Ping(ctx, db, rdb); err != nil {
		panic("backend connection failed: " + err.Error())
	}
	log.Info().Msg("database and redis connected")

	if err := database.AutoMigrate(db); err != nil {
		panic("migrate: " + err.Error())
	}
	created, err := auth.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		panic("seed admin: " + err.Error())
	}
	if created {
		log.Info().Str("email", cfg.AdminEmail).Msg("admin account created")
	}

	log.Info().Str("port", cfg.Port).Msgf("server running at http://localhost:%s (health: /health/json)", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
