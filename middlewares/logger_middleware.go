package middlewares

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shivamnegi1705/khidki-backend/logging"
)

// RequestLogger logs every request and injects a request-scoped child logger
// into the request's UserContext, so handlers and services pick it up via
// logging.FromCtx.
func RequestLogger(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("X-Request-Id", reqID)

		l := base.With(
			"req_id", reqID,
			"method", c.Method(),
			"path", c.Path(),
			"remote", c.IP(),
		)
		c.SetUserContext(logging.WithCtx(c.UserContext(), l))

		err := c.Next()

		status := c.Response().StatusCode()
		attrs := []any{
			"status", status,
			"dur_ms", time.Since(start).Milliseconds(),
			"resp_bytes", len(c.Response().Body()),
		}
		if err != nil {
			attrs = append(attrs, "error", err.Error())
		}

		if status >= fiber.StatusBadRequest {
			l.Error("http_request", attrs...)
		} else {
			l.Info("http_request", attrs...)
		}

		return err
	}
}
