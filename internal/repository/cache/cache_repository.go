package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/domain/repository"
)

const (
	interpretationKeyPrefix = "narrative:interpretation:"
	jobKeyPrefix            = "narrative:job:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetInterpretation получает ответ модели по хешу промпта
func (r *cacheRepository) GetInterpretation(ctx context.Context, promptHash string) (string, bool, error) {
	data, err := r.Get(ctx, interpretationKeyPrefix+promptHash)
	if err != nil {
		return "", false, err
	}
	if data == nil {
		return "", false, nil
	}
	return string(data), true, nil
}

// SetInterpretation сохраняет ответ модели по хешу промпта
func (r *cacheRepository) SetInterpretation(ctx context.Context, promptHash, text string, ttl time.Duration) error {
	return r.Set(ctx, interpretationKeyPrefix+promptHash, []byte(text), ttl)
}

// GetJob получает состояние фоновой интерпретации
func (r *cacheRepository) GetJob(ctx context.Context, id uuid.UUID) (*domain.NarrativeJob, error) {
	data, err := r.Get(ctx, jobKeyPrefix+id.String())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var job domain.NarrativeJob
	if err := json.Unmarshal(data, &job); err != nil {
		r.logger.Error("Failed to unmarshal job from cache", zap.String("job_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}

// SetJob сохраняет состояние фоновой интерпретации
func (r *cacheRepository) SetJob(ctx context.Context, job *domain.NarrativeJob, ttl time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		r.logger.Error("Failed to marshal job", zap.Error(err))
		return fmt.Errorf("marshal job: %w", err)
	}
	return r.Set(ctx, jobKeyPrefix+job.JobID.String(), data, ttl)
}
