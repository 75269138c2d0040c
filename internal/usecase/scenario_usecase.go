package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/domain/repository"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

// ScenarioUseCase - CRUD сценариев анализа
type ScenarioUseCase struct {
	repo   repository.ScenarioRepository
	logger *zap.Logger
}

func NewScenarioUseCase(repo repository.ScenarioRepository, logger *zap.Logger) *ScenarioUseCase {
	return &ScenarioUseCase{repo: repo, logger: logger}
}

// Save создает или перезаписывает сценарий
func (uc *ScenarioUseCase) Save(ctx context.Context, req dto.SaveScenarioRequest) (*domain.Scenario, error) {
	sc := &domain.Scenario{
		Name:       req.Name,
		Goal:       req.Goal,
		Challenges: req.Challenges,
	}
	if err := uc.repo.Save(ctx, sc); err != nil {
		uc.logger.Error("Failed to save scenario", zap.String("name", req.Name), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Scenario saved",
		zap.String("name", sc.Name),
		zap.Int("challenges", len(sc.Challenges)))
	return sc, nil
}

func (uc *ScenarioUseCase) Get(ctx context.Context, name string) (*domain.Scenario, error) {
	sc, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		uc.logger.Error("Failed to get scenario", zap.String("name", name), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if sc == nil {
		return nil, apperrors.ErrScenarioNotFound.WithDetails(map[string]interface{}{"scenario": name})
	}
	return sc, nil
}

func (uc *ScenarioUseCase) List(ctx context.Context) ([]*domain.Scenario, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list scenarios", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return list, nil
}

func (uc *ScenarioUseCase) Delete(ctx context.Context, name string) error {
	existed, err := uc.repo.Delete(ctx, name)
	if err != nil {
		uc.logger.Error("Failed to delete scenario", zap.String("name", name), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if !existed {
		return apperrors.ErrScenarioNotFound.WithDetails(map[string]interface{}{"scenario": name})
	}
	return nil
}

// QueryUseCase - CRUD сохранённых запросов генеративного режима
type QueryUseCase struct {
	repo   repository.QueryRepository
	logger *zap.Logger
}

func NewQueryUseCase(repo repository.QueryRepository, logger *zap.Logger) *QueryUseCase {
	return &QueryUseCase{repo: repo, logger: logger}
}

func (uc *QueryUseCase) Save(ctx context.Context, req dto.SaveQueryRequest) (*domain.SavedQuery, error) {
	q := &domain.SavedQuery{
		Name:           req.Name,
		Indicators:     req.Indicators,
		Interpretation: req.Interpretation,
	}
	if err := uc.repo.Save(ctx, q); err != nil {
		uc.logger.Error("Failed to save query", zap.String("name", req.Name), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return q, nil
}

func (uc *QueryUseCase) Get(ctx context.Context, name string) (*domain.SavedQuery, error) {
	q, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		uc.logger.Error("Failed to get query", zap.String("name", name), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if q == nil {
		return nil, apperrors.ErrQueryNotFound.WithDetails(map[string]interface{}{"query": name})
	}
	return q, nil
}

func (uc *QueryUseCase) List(ctx context.Context) ([]*domain.SavedQuery, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list queries", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return list, nil
}

func (uc *QueryUseCase) Delete(ctx context.Context, name string) error {
	existed, err := uc.repo.Delete(ctx, name)
	if err != nil {
		uc.logger.Error("Failed to delete query", zap.String("name", name), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if !existed {
		return apperrors.ErrQueryNotFound.WithDetails(map[string]interface{}{"query": name})
	}
	return nil
}
