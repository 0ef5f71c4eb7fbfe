package fiber

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID reuses the caller's X-Request-Id when trustHeader is set,
// otherwise it generates one. The id is echoed in the response.
func RequestID(trustHeader bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id string
		if trustHeader {
			id = c.Get(RequestIDHeader)
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(requestIDKey{}, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}

func requestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey{}).(string)
	return id
}

func AccessLog(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		level := zerolog.InfoLevel
		if err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError {
			level = zerolog.ErrorLevel
		}

		logger.WithLevel(level).
			Str("request_id", requestIDFrom(c)).
			Dur("duration_ms", time.Since(start)).
			Str("source_ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status_code", c.Response().StatusCode()).
			Err(err).
			Msg("request handled")

		return err
	}
}
