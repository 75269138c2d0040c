package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/domain/repository"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/pkg/metrics"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

// NarrativeJobUseCase ставит интерпретации в очередь и хранит их статус
type NarrativeJobUseCase struct {
	streamRepo repository.StreamRepository
	cacheRepo  repository.CacheRepository
	narrative  *NarrativeUseCase
	jobTTL     time.Duration
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewNarrativeJobUseCase создает новый экземпляр NarrativeJobUseCase
func NewNarrativeJobUseCase(
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	narrative *NarrativeUseCase,
	jobTTL time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *NarrativeJobUseCase {
	return &NarrativeJobUseCase{
		streamRepo: streamRepo,
		cacheRepo:  cacheRepo,
		narrative:  narrative,
		jobTTL:     jobTTL,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// Create сохраняет задачу в статусе pending и публикует её в стрим
func (uc *NarrativeJobUseCase) Create(ctx context.Context, req dto.CreateNarrativeJobRequest) (*dto.NarrativeJobCreatedResponse, error) {
	job := &domain.NarrativeJob{
		JobID:     uuid.New(),
		Status:    domain.JobPending,
		UpdatedAt: uc.now().UTC(),
	}

	if err := uc.cacheRepo.SetJob(ctx, job, uc.jobTTL); err != nil {
		uc.logger.Error("Failed to store job", zap.Error(err))
		return nil, apperrors.ErrCacheError
	}

	event := domain.NarrativeJobEvent{
		JobID:      job.JobID,
		Indicators: req.Indicators,
		Scenario:   req.Scenario,
		Challenge:  req.Challenge,
		Selection:  req.Selection,
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamNarrativeRequested, event); err != nil {
		uc.logger.Error("Failed to publish job", zap.String("job_id", job.JobID.String()), zap.Error(err))
		return nil, fmt.Errorf("publish narrative job: %w", err)
	}

	uc.logger.Info("Narrative job queued",
		zap.String("job_id", job.JobID.String()),
		zap.Bool("challenge", event.IsChallenge()))

	return &dto.NarrativeJobCreatedResponse{JobID: job.JobID.String(), Status: job.Status}, nil
}

// Get возвращает состояние задачи
func (uc *NarrativeJobUseCase) Get(ctx context.Context, id string) (*domain.NarrativeJob, error) {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{"job_id": "must be a UUID"})
	}

	job, err := uc.cacheRepo.GetJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.ErrCacheError
	}
	if job == nil {
		return nil, apperrors.ErrJobNotFound.WithDetails(map[string]interface{}{"job_id": id})
	}
	return job, nil
}

// Process выполняет интерпретацию задачи и сохраняет результат.
// Ошибка означает, что задачу можно повторить.
func (uc *NarrativeJobUseCase) Process(ctx context.Context, event *domain.NarrativeJobEvent) error {
	var (
		interp *domain.Interpretation
		err    error
	)
	if event.IsChallenge() {
		interp, err = uc.narrative.InterpretChallenge(ctx, event.Scenario, event.Challenge, event.Selection)
	} else {
		interp, err = uc.narrative.InterpretIndicators(ctx, event.Indicators, event.Selection)
	}
	if err != nil {
		return err
	}

	job := &domain.NarrativeJob{
		JobID:          event.JobID,
		Status:         domain.JobDone,
		Interpretation: interp.Text,
		UpdatedAt:      uc.now().UTC(),
	}
	if err := uc.cacheRepo.SetJob(ctx, job, uc.jobTTL); err != nil {
		return fmt.Errorf("store job result: %w", err)
	}

	uc.metrics.ObserveJob(string(domain.JobDone))
	return nil
}

// Fail помечает задачу как неуспешную
func (uc *NarrativeJobUseCase) Fail(ctx context.Context, jobID uuid.UUID, reason string) error {
	job := &domain.NarrativeJob{
		JobID:     jobID,
		Status:    domain.JobFailed,
		Error:     reason,
		UpdatedAt: uc.now().UTC(),
	}
	if err := uc.cacheRepo.SetJob(ctx, job, uc.jobTTL); err != nil {
		return fmt.Errorf("store job failure: %w", err)
	}

	uc.metrics.ObserveJob(string(domain.JobFailed))
	return nil
}

// IsRetryable сообщает, имеет ли смысл повторять задачу после ошибки:
// ошибки запроса (4xx) повтором не исправить
func IsRetryable(err error) bool {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode >= 500
	}
	return err != nil
}
