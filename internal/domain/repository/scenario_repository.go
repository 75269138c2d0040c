package repository

import (
	"context"

	"github.com/indicator-dashboard/internal/domain"
)

// ScenarioRepository определяет методы для работы со сценариями
type ScenarioRepository interface {
	// Save создает или перезаписывает сценарий по имени
	Save(ctx context.Context, scenario *domain.Scenario) error

	// GetByName возвращает сценарий, отсутствие - (nil, nil)
	GetByName(ctx context.Context, name string) (*domain.Scenario, error)

	// List возвращает все сценарии по имени
	List(ctx context.Context) ([]*domain.Scenario, error)

	// Delete удаляет сценарий и сообщает, существовал ли он
	Delete(ctx context.Context, name string) (bool, error)
}

// QueryRepository определяет методы для работы с сохранёнными запросами
type QueryRepository interface {
	Save(ctx context.Context, query *domain.SavedQuery) error
	GetByName(ctx context.Context, name string) (*domain.SavedQuery, error)
	List(ctx context.Context) ([]*domain.SavedQuery, error)
	Delete(ctx context.Context, name string) (bool, error)
}
