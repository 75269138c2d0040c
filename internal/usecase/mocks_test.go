package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/indicator-dashboard/internal/domain"
)

// MockNarrativeClient is a mock of NarrativeClient
type MockNarrativeClient struct {
	mock.Mock
}

func (m *MockNarrativeClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetInterpretation(ctx context.Context, promptHash string) (string, bool, error) {
	args := m.Called(ctx, promptHash)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCacheRepository) SetInterpretation(ctx context.Context, promptHash, text string, ttl time.Duration) error {
	args := m.Called(ctx, promptHash, text, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJob(ctx context.Context, id uuid.UUID) (*domain.NarrativeJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NarrativeJob), args.Error(1)
}

func (m *MockCacheRepository) SetJob(ctx context.Context, job *domain.NarrativeJob, ttl time.Duration) error {
	args := m.Called(ctx, job, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockScenarioRepository is a mock of ScenarioRepository
type MockScenarioRepository struct {
	mock.Mock
}

func (m *MockScenarioRepository) Save(ctx context.Context, scenario *domain.Scenario) error {
	args := m.Called(ctx, scenario)
	return args.Error(0)
}

func (m *MockScenarioRepository) GetByName(ctx context.Context, name string) (*domain.Scenario, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}

func (m *MockScenarioRepository) List(ctx context.Context) ([]*domain.Scenario, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Scenario), args.Error(1)
}

func (m *MockScenarioRepository) Delete(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockQueryRepository is a mock of QueryRepository
type MockQueryRepository struct {
	mock.Mock
}

func (m *MockQueryRepository) Save(ctx context.Context, q *domain.SavedQuery) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQueryRepository) GetByName(ctx context.Context, name string) (*domain.SavedQuery, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedQuery), args.Error(1)
}

func (m *MockQueryRepository) List(ctx context.Context) ([]*domain.SavedQuery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SavedQuery), args.Error(1)
}

func (m *MockQueryRepository) Delete(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}
