package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/domain/repository"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/worker"
)

const (
	defaultRetryBackoff  = 2 * time.Second
	defaultClaimMinIdle  = 5 * time.Minute
	defaultClaimInterval = time.Minute
)

// ErrChannelClosed - стрим перестал отдавать сообщения без отмены контекста
var ErrChannelClosed = errors.New("message channel closed")

// JobProcessor выполняет интерпретацию задачи; реализуется NarrativeJobUseCase
type JobProcessor interface {
	Process(ctx context.Context, event *domain.NarrativeJobEvent) error
	Fail(ctx context.Context, jobID uuid.UUID, reason string) error
}

// Option настраивает NarrativeWorker
type Option func(*NarrativeWorker)

// WithRetryBackoff задаёт паузу перед повтором; n-й повтор ждёт n*d
func WithRetryBackoff(d time.Duration) Option {
	return func(w *NarrativeWorker) {
		w.retryBackoff = d
	}
}

// WithClaimMinIdle задаёт, сколько сообщение должно провисеть в pending,
// прежде чем воркер заберёт его себе
func WithClaimMinIdle(d time.Duration) Option {
	return func(w *NarrativeWorker) {
		if d > 0 {
			w.claimMinIdle = d
		}
	}
}

// WithClaimInterval задаёт период проверки зависших сообщений
func WithClaimInterval(d time.Duration) Option {
	return func(w *NarrativeWorker) {
		if d > 0 {
			w.claimInterval = d
		}
	}
}

// NarrativeWorker читает задачи интерпретации из стрима и выполняет их
type NarrativeWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	processor     JobProcessor
	maxRetries    int
	retryBackoff  time.Duration
	claimMinIdle  time.Duration
	claimInterval time.Duration
}

// NewNarrativeWorker создает новый NarrativeWorker.
// maxRetries - число попыток на задачу, не меньше одной.
func NewNarrativeWorker(
	streamRepo repository.StreamRepository,
	processor JobProcessor,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
	opts ...Option,
) *NarrativeWorker {
	if maxRetries < 1 {
		maxRetries = 1
	}
	w := &NarrativeWorker{
		BaseWorker:    worker.NewBaseWorker("narrative-jobs", consumerGroup, logger),
		streamRepo:    streamRepo,
		processor:     processor,
		maxRetries:    maxRetries,
		retryBackoff:  defaultRetryBackoff,
		claimMinIdle:  defaultClaimMinIdle,
		claimInterval: defaultClaimInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start подписывается на стрим и обрабатывает задачи по одной.
// Сначала и затем периодически забирает зависшие в pending сообщения группы,
// в том числе оставленные остановленными процессами.
func (w *NarrativeWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting NarrativeWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamNarrativeRequested, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.recoverPending(ctx)
	if w.IsStopped() {
		logger.Info("Worker stopped")
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// читатель стрима живёт не дольше воркера
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(w.claimInterval)
	defer ticker.Stop()

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamNarrativeRequested, w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.recoverPending(ctx)

		case msg, ok := <-msgChan:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("Message channel closed")
				return ErrChannelClosed
			}

			if w.handleMessage(ctx, msg) {
				w.ack(ctx, msg.ID)
			}
		}
	}
}

// recoverPending обрабатывает сообщения, не подтверждённые дольше claimMinIdle.
// Ошибка чтения pending не останавливает воркер.
func (w *NarrativeWorker) recoverPending(ctx context.Context) {
	logger := w.Logger()

	msgs, err := w.streamRepo.ClaimPending(ctx, domain.StreamNarrativeRequested, w.ConsumerGroup(), w.ConsumerName(), w.claimMinIdle)
	if err != nil {
		logger.Warn("Failed to claim pending messages", zap.Error(err))
		return
	}

	for _, msg := range msgs {
		logger.Info("Recovering pending message", zap.String("message_id", msg.ID))
		if !w.handleMessage(ctx, msg) {
			return
		}
		w.ack(ctx, msg.ID)
	}
}

func (w *NarrativeWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamNarrativeRequested, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}

// handleMessage выполняет задачу с повторами. true - итог записан в статус задачи
// и сообщение можно подтвердить; false - обработка прервана остановкой,
// сообщение остаётся в pending и позже забирается через recoverPending.
func (w *NarrativeWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) bool {
	logger := w.Logger()

	var event domain.NarrativeJobEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || event.JobID == uuid.Nil {
		logger.Error("Malformed narrative job, skipping",
			zap.String("message_id", msg.ID),
			zap.String("raw_data", msg.Data),
			zap.Error(err))
		return true
	}

	logger = logger.With(zap.String("job_id", event.JobID.String()))

	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		lastErr = w.processor.Process(ctx, &event)
		if lastErr == nil {
			logger.Info("Narrative job done", zap.Int("attempt", attempt))
			return true
		}

		if !usecase.IsRetryable(lastErr) {
			logger.Warn("Narrative job rejected", zap.Error(lastErr))
			break
		}

		logger.Warn("Narrative job attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(lastErr))

		if attempt < w.maxRetries && !w.sleep(ctx, time.Duration(attempt)*w.retryBackoff) {
			logger.Info("Narrative job interrupted, leaving it pending")
			return false
		}
	}

	if err := w.processor.Fail(ctx, event.JobID, lastErr.Error()); err != nil {
		logger.Error("Failed to mark job as failed", zap.Error(err))
	}
	return true
}

// sleep ждёт d; false, если воркер останавливают
func (w *NarrativeWorker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-w.StopChan():
		return false
	case <-ctx.Done():
		return false
	}
}
