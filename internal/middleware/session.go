package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionConfig for the Redis-backed admin session.
type SessionConfig struct {
	Secret            string // signs the cookie value when set
	AllowCrossSiteDev bool
	IsProduction      bool
}

const (
	SessionCookieName  = "portfolio.sid"
	SessionRedisPrefix = "session:"
	SessionMaxAge      = 24 * time.Hour

	sessionDataLocal = "session_data"
	sessionIDLocal   = "session_id"
)

// SessionUser is the shape stored in session under "user".
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// signature is the unpadded base64 HMAC-SHA256 of id, the cookie-signature format.
func signature(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return base64.RawStdEncoding.EncodeToString(mac.Sum(nil))
}

// SessionCookieValue encodes a session id as "s:<id>" or "s:<id>.<sig>" when a secret is configured.
func SessionCookieValue(id, secret string) string {
	if secret == "" {
		return "s:" + id
	}
	return "s:" + id + "." + signature(id, secret)
}

// parseSessionCookie returns the session id, or "" when the cookie is malformed or the signature is wrong.
func parseSessionCookie(v, secret string) string {
	if !strings.HasPrefix(v, "s:") {
		return ""
	}
	id, sig, _ := strings.Cut(v[2:], ".")
	if secret == "" {
		return id
	}
	if !hmac.Equal([]byte(sig), []byte(signature(id, secret))) {
		return ""
	}
	return id
}

// Session returns a Fiber middleware that loads the session from Redis before
// the handler and saves it afterwards.
func Session(cfg SessionConfig, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := parseSessionCookie(c.Cookies(SessionCookieName), cfg.Secret)

		var data map[string]interface{}
		if sessionID != "" {
			b, err := rdb.Get(c.UserContext(), SessionRedisPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, &data)
			} else if err != redis.Nil {
				log.Warn().Err(err).Msg("session: redis read failed")
			}
		}
		if data == nil {
			data = make(map[string]interface{})
		}

		c.Locals(sessionDataLocal, data)
		c.Locals(userLocal, data["user"])
		c.Locals(sessionIDLocal, sessionID)

		if err := c.Next(); err != nil {
			return err
		}

		// Only sessions that hold a user are persisted.
		sid, _ := c.Locals(sessionIDLocal).(string)
		updated, _ := c.Locals(sessionDataLocal).(map[string]interface{})
		if sid != "" && updated != nil && updated["user"] != nil {
			b, _ := json.Marshal(updated)
			if err := rdb.Set(context.Background(), SessionRedisPrefix+sid, b, SessionMaxAge).Err(); err != nil {
				log.Warn().Err(err).Msg("session: redis write failed")
			}
		}
		return nil
	}
}

// GetSessionID returns the current session ID from context (for login/logout).
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionIDLocal).(string)
	return sid
}

// SetSessionUser sets the user in the session; it is saved after the handler returns.
func SetSessionUser(c *fiber.Ctx, user SessionUser) {
	data, _ := c.Locals(sessionDataLocal).(map[string]interface{})
	if data == nil {
		data = make(map[string]interface{})
	}
	data["user"] = map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
	}
	c.Locals(sessionDataLocal, data)
	c.Locals(userLocal, data["user"])
}

// RegenerateSessionID creates a new session ID and sets it in Locals (cookie set by handler).
func RegenerateSessionID(c *fiber.Ctx) string {
	newID := uuid.New().String()
	c.Locals(sessionIDLocal, newID)
	return newID
}

// DestroySession clears user and session data from Locals; caller must clear cookie and Redis.
func DestroySession(c *fiber.Ctx) {
	c.Locals(sessionDataLocal, make(map[string]interface{}))
	c.Locals(userLocal, nil)
	c.Locals(sessionIDLocal, "")
}

// SessionCookieConfig returns the cookie options shared by login and logout.
func SessionCookieConfig(cfg SessionConfig) fiber.Cookie {
	sameSite := "Lax"
	if cfg.AllowCrossSiteDev {
		sameSite = "None"
	}
	return fiber.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction || cfg.AllowCrossSiteDev,
		SameSite: sameSite,
	}
}
