package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"portfolio-backend/internal/application/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// HealthMarker records request stats in Redis (skip /, /health*, favicon).
// 5xx responses are also pushed onto the capped error log.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		lastReq, _ := json.Marshal(map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		})
		ctx := context.Background()
		pipe := rdb.Pipeline()
		pipe.Set(ctx, health.KeyLastReq, lastReq, 0)
		pipe.Incr(ctx, health.KeyReqTotal)
		_, _ = pipe.Exec(ctx)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		pipe = rdb.Pipeline()
		pipe.Incr(ctx, health.KeyResCount)
		pipe.IncrByFloat(ctx, health.KeyResTime, float64(time.Since(start).Milliseconds()))
		if status >= 500 {
			entry, _ := json.Marshal(map[string]interface{}{
				"time":     time.Now(),
				"method":   c.Method(),
				"path":     c.OriginalURL(),
				"status":   status,
				"trace_id": GetTraceID(c),
			})
			pipe.Incr(ctx, health.KeyReqErrors)
			pipe.LPush(ctx, health.KeyErrorLog, entry)
			pipe.LTrim(ctx, health.KeyErrorLog, 0, health.ErrorLogSize-1)
		}
		_, _ = pipe.Exec(ctx)
		return err
	}
}
