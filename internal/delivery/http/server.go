package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/config"
	"github.com/indicator-dashboard/internal/delivery/http/handler"
	"github.com/indicator-dashboard/internal/delivery/http/middleware"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/pkg/metrics"
	"github.com/indicator-dashboard/internal/pkg/utils"
)

// Handlers - все обработчики API
type Handlers struct {
	Health    *handler.HealthHandler
	Indicator *handler.IndicatorHandler
	Dashboard *handler.DashboardHandler
	Narrative *handler.NarrativeHandler
	Scenario  *handler.ScenarioHandler
	Query     *handler.QueryHandler
	Workforce *handler.WorkforceHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	handlers Handlers
}

// NewServer - создание нового HTTP сервера; m может быть nil, тогда /metrics не публикуется
func NewServer(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Indicator Dashboard",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		// имена индикаторов содержат пробелы и скобки
		UnescapePath: true,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		metrics:  m,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App возвращает fiber приложение (для app.Test в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	if s.metrics != nil {
		s.app.Use(middleware.Metrics(s.metrics))
	}
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	}

	api := s.app.Group("/api/v1")

	api.Get("/health", h.Health.Health)

	// Indicators (имя может содержать "/")
	api.Get("/indicators", h.Indicator.List)
	api.Get("/indicators/+/series", h.Indicator.GetSeries)
	api.Get("/indicators/+/chart", h.Indicator.GetChart)
	api.Get("/indicators/+/deviation", h.Indicator.GetDeviation)
	api.Get("/indicators/+/tail", h.Indicator.GetTail)

	// Dashboard
	api.Get("/industries", h.Dashboard.Industries)
	api.Get("/industries/:industry/indicators", h.Dashboard.IndustryIndicators)
	api.Get("/reservists", h.Dashboard.Reservists)
	api.Get("/startups/scores", h.Dashboard.StartupScores)

	// Generative mode
	narrative := api.Group("/narrative")
	narrative.Post("/indicators", h.Narrative.InterpretIndicators)
	narrative.Post("/select", h.Narrative.SelectIndicators)
	narrative.Post("/scenarios/:name/challenges/:challenge", h.Narrative.InterpretChallenge)
	narrative.Post("/jobs", h.Narrative.CreateJob)
	narrative.Get("/jobs/:id", h.Narrative.GetJob)

	// Scenarios
	api.Get("/scenarios", h.Scenario.List)
	api.Post("/scenarios", h.Scenario.Save)
	api.Get("/scenarios/:name", h.Scenario.Get)
	api.Delete("/scenarios/:name", h.Scenario.Delete)

	// Saved queries
	api.Get("/queries", h.Query.List)
	api.Post("/queries", h.Query.Save)
	api.Get("/queries/:name", h.Query.Get)
	api.Delete("/queries/:name", h.Query.Delete)

	// Workforce
	workforce := api.Group("/workforce")
	workforce.Post("/attrition", h.Workforce.Attrition)
	workforce.Post("/reviews/stats", h.Workforce.ReviewStats)
	workforce.Post("/reviews/analysis", h.Workforce.AnalyzeReviews)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler приводит ошибки fiber (404, 405, паники) к общему формату ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, apperrors.ErrInternalServer)
		}

		return utils.SendError(c, apperrors.New(errorCode(code), err.Error(), code))
	}
}

// errorCode - код ошибки из текста статуса: 404 -> NOT_FOUND
func errorCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(fiberutils.StatusMessage(status), " ", "_"))
}
