package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vitornoms1/FinanceManager/internal/logger"
)

// RequestLogger tags every request with an id, echoes it in X-Request-Id and
// logs the outcome.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals("request_id", reqID)
		c.Set("X-Request-Id", reqID)

		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()

		logger.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)))

		return err
	}
}
