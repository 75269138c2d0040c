package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// HealthChecker - зависимость, доступность которой видна в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler отдаёт состояние сервиса и его зависимостей
type HealthHandler struct {
	checks map[string]HealthChecker
	logger *zap.Logger
}

func NewHealthHandler(checks map[string]HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

// Health godoc
// @Summary Health check
// @Description Состояние сервиса и его зависимостей (postgres, redis)
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	checks := make(map[string]string, len(h.checks))
	for name, checker := range h.checks {
		if err := checker.Health(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			checks[name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now().UTC(),
	})
}
