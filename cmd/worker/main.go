package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/catalog"
	"github.com/indicator-dashboard/internal/config"
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

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Narrative Worker",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.String("model", cfg.Narrative.Model))

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}

	// 3. Connect to PostgreSQL (сценарии для задач по вызовам)
	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

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

	// 5. Repositories and use cases
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	scenarioRepo := postgres.NewScenarioRepository(db, log)
	m := metrics.New()

	seriesUC := usecase.NewSeriesUseCase(series.NewGenerator(), cat, m, log)
	narrativeUC := usecase.NewNarrativeUseCase(llm.NewClient(&cfg.Narrative, log), cacheRepo, scenarioRepo,
		seriesUC, cat, cfg.Cache.NarrativeCacheTTL, m, log)
	jobUC := usecase.NewNarrativeJobUseCase(streamRepo, cacheRepo, narrativeUC, cfg.Cache.JobTTL, m, log)

	// 6. Workers
	workerManager := worker.NewWorkerManager(0, log)
	workerManager.Register(narrative.NewNarrativeWorker(streamRepo, jobUC, cfg.Worker.ConsumerGroup, cfg.Worker.MaxRetries, log,
		narrative.WithClaimMinIdle(cfg.Worker.ClaimMinIdle)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
