package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/indicator-dashboard/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, промах - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetInterpretation получает закешированный ответ модели по хешу промпта
	GetInterpretation(ctx context.Context, promptHash string) (string, bool, error)

	// SetInterpretation сохраняет ответ модели
	SetInterpretation(ctx context.Context, promptHash, text string, ttl time.Duration) error

	// GetJob получает состояние фоновой интерпретации, промах - (nil, nil)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.NarrativeJob, error)

	// SetJob сохраняет состояние фоновой интерпретации
	SetJob(ctx context.Context, job *domain.NarrativeJob, ttl time.Duration) error
}
