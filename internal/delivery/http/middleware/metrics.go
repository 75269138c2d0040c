package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/indicator-dashboard/internal/pkg/metrics"
)

// Metrics считает запросы и задержку по шаблону маршрута
// (/api/v1/indicators/:name/series), не по сырому пути
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "/" {
			route = r.Path
		}

		m.ObserveHTTP(c.Method(), route, status, time.Since(start))
		return err
	}
}
