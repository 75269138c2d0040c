package main

// @title Indicator Dashboard API
// @version 1.0.0
// @description Бэкенд дашборда экономических индикаторов: синтетические недельные ряды,
// @description данные графиков, метрика отклонения, оценки стартапов и генеративный режим
// @description (интерпретация индикаторов языковой моделью).

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/indicator-dashboard/docs"
	"github.com/indicator-dashboard/internal/catalog"
	"github.com/indicator-dashboard/internal/config"
	httpDelivery "github.com/indicator-dashboard/internal/delivery/http"
	"github.com/indicator-dashboard/internal/delivery/http/handler"
	"github.com/indicator-dashboard/internal/infrastructure/llm"
	"github.com/indicator-dashboard/internal/pkg/logger"
	"github.com/indicator-dashboard/internal/pkg/metrics"
	"github.com/indicator-dashboard/internal/repository/cache"
	"github.com/indicator-dashboard/internal/repository/postgres"
	redisRepo "github.com/indicator-dashboard/internal/repository/redis"
	"github.com/indicator-dashboard/internal/series"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/worker"
	"github.com/indicator-dashboard/internal/worker/narrative"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Indicator Dashboard API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("in_process_worker", cfg.Worker.Enabled),
	)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}

	// 3. Connect to PostgreSQL and apply migrations
	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(ctx); err != nil {
		cancel()
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}
	cancel()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	scenarioRepo := postgres.NewScenarioRepository(db, log)
	queryRepo := postgres.NewQueryRepository(db, log)
	narrativeClient := llm.NewClient(&cfg.Narrative, log)

	// 6. Initialize use cases
	m := metrics.New()

	seriesUC := usecase.NewSeriesUseCase(series.NewGenerator(), cat, m, log)
	dashboardUC := usecase.NewDashboardUseCase(cat, log)
	startupUC := usecase.NewStartupUseCase(cat, log)
	narrativeUC := usecase.NewNarrativeUseCase(narrativeClient, cacheRepo, scenarioRepo, seriesUC, cat, cfg.Cache.NarrativeCacheTTL, m, log)
	jobUC := usecase.NewNarrativeJobUseCase(streamRepo, cacheRepo, narrativeUC, cfg.Cache.JobTTL, m, log)
	scenarioUC := usecase.NewScenarioUseCase(scenarioRepo, log)
	queryUC := usecase.NewQueryUseCase(queryRepo, log)
	workforceUC := usecase.NewWorkforceUseCase(log)

	// 7. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, m, httpDelivery.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.HealthChecker{
			"postgres": db,
			"redis":    redisClient,
		}, log),
		Indicator: handler.NewIndicatorHandler(seriesUC, dashboardUC, log),
		Dashboard: handler.NewDashboardHandler(dashboardUC, startupUC, log),
		Narrative: handler.NewNarrativeHandler(narrativeUC, jobUC, log),
		Scenario:  handler.NewScenarioHandler(scenarioUC, log),
		Query:     handler.NewQueryHandler(queryUC, log),
		Workforce: handler.NewWorkforceHandler(workforceUC, narrativeUC, log),
	})

	// 8. Optional in-process worker for narrative jobs
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var workerManager *worker.WorkerManager
	if cfg.Worker.Enabled {
		workerManager = worker.NewWorkerManager(0, log)
		workerManager.Register(narrative.NewNarrativeWorker(streamRepo, jobUC, cfg.Worker.ConsumerGroup, cfg.Worker.MaxRetries, log,
			narrative.WithClaimMinIdle(cfg.Worker.ClaimMinIdle)))
		if err := workerManager.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workerManager != nil {
		stopWorkers()
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
