package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// DefaultAllowOrigins - dev-сервера фронтенда дашборда
var DefaultAllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// Пустой список origins означает DefaultAllowOrigins.
func CORS(origins []string) fiber.Handler {
	if len(origins) == 0 {
		origins = DefaultAllowOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language",
		AllowCredentials: true,
	})
}
