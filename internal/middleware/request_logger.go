package middleware

import (
	"go-pipelinereport/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLoggers injects a logger carrying a "request_id" field into c.Locals().
// An incoming X-Request-ID is reused; otherwise a UUID is generated.
func RequestLoggers(baseFileLogger *zap.Logger) fiber.Handler {
	if baseFileLogger == nil {
		baseFileLogger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)
		c.Locals(RequestIDKey, requestID)
		c.Locals(RequestFileLoggerKey, baseFileLogger.With(zap.String("request_id", requestID)))
		return c.Next()
	}
}

// GetRequestFileLogger retrieves the request-scoped logger from fiber.Ctx.Locals.
// Falls back to the global file logger if not found.
func GetRequestFileLogger(c *fiber.Ctx) *zap.Logger {
	if logger, ok := c.Locals(RequestFileLoggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return logging.GetFileLogger()
}

// GetRequestID retrieves the request ID string from fiber.Ctx.Locals.
func GetRequestID(c *fiber.Ctx) string {
	if reqID, ok := c.Locals(RequestIDKey).(string); ok {
		return reqID
	}
	return ""
}
