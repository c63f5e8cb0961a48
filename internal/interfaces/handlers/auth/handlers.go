package auth

import (
	"context"
	"errors"

	authsvc "portfolio-backend/internal/application/auth"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Authenticator authsvc.Authenticator
	Rdb           *redis.Client
	Config        middleware.SessionConfig
}

// Login POST /api/auth/login: authenticate, start a fresh session, set the cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req authsvc.LoginInput
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest)
	}

	account, err := h.Authenticator.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrEmailPasswordRequired):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case errors.Is(err, authsvc.ErrInvalidCredentials):
			log.Info().Str("email", req.Email).Msg("auth: login rejected")
			return response.Unauthorized(c, err.Error())
		}
		log.Error().Err(err).Msg("auth: authenticator failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}

	// Drop the pre-login session so a planted cookie cannot be promoted.
	if old := middleware.GetSessionID(c); old != "" {
		_ = h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+old).Err()
	}
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{ID: account.ID, Email: account.Email})

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = middleware.SessionCookieValue(sessionID, h.Config.Secret)
	c.Cookie(&cookie)

	return response.Success(c, fiber.Map{"success": true, "user": account})
}

// Me GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	account, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		if middleware.GetSessionID(c) != "" {
			log.Debug().Msg("auth/me: session id present but no user stored")
		}
		return response.Unauthorized(c, err.Error())
	}
	return response.Success(c, fiber.Map{"user": account})
}

// Logout DELETE /api/auth/logout: delete the stored session and clear the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if sessionID := middleware.GetSessionID(c); sessionID != "" {
		if err := h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+sessionID).Err(); err != nil {
			log.Warn().Err(err).Msg("auth: session delete failed")
		}
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)
	return response.OK(c)
}
