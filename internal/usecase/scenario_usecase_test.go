package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

func TestScenarioUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("save", func(t *testing.T) {
		repo := &MockScenarioRepository{}
		uc := usecase.NewScenarioUseCase(repo, zap.NewNop())
		repo.On("Save", ctx, mock.MatchedBy(func(s *domain.Scenario) bool {
			return s.Name == "Housing" && len(s.Challenges["Labor"]) == 1
		})).Return(nil)

		sc, err := uc.Save(ctx, dto.SaveScenarioRequest{
			Name:       "Housing",
			Goal:       "Keep building",
			Challenges: map[string][]string{"Labor": {"Level of wages"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "Keep building", sc.Goal)
		repo.AssertExpectations(t)
	})

	t.Run("save database error", func(t *testing.T) {
		repo := &MockScenarioRepository{}
		uc := usecase.NewScenarioUseCase(repo, zap.NewNop())
		repo.On("Save", ctx, mock.Anything).Return(errors.New("conn refused"))

		_, err := uc.Save(ctx, dto.SaveScenarioRequest{Name: "Housing"})
		assert.True(t, errors.Is(err, apperrors.ErrDatabaseError))
	})

	t.Run("get missing", func(t *testing.T) {
		repo := &MockScenarioRepository{}
		uc := usecase.NewScenarioUseCase(repo, zap.NewNop())
		repo.On("GetByName", ctx, "Nope").Return(nil, nil)

		_, err := uc.Get(ctx, "Nope")
		assert.True(t, errors.Is(err, apperrors.ErrScenarioNotFound))
	})

	t.Run("list", func(t *testing.T) {
		repo := &MockScenarioRepository{}
		uc := usecase.NewScenarioUseCase(repo, zap.NewNop())
		repo.On("List", ctx).Return([]*domain.Scenario{{Name: "A"}, {Name: "B"}}, nil)

		list, err := uc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("delete", func(t *testing.T) {
		repo := &MockScenarioRepository{}
		uc := usecase.NewScenarioUseCase(repo, zap.NewNop())
		repo.On("Delete", ctx, "A").Return(true, nil)
		repo.On("Delete", ctx, "B").Return(false, nil)

		assert.NoError(t, uc.Delete(ctx, "A"))
		assert.True(t, errors.Is(uc.Delete(ctx, "B"), apperrors.ErrScenarioNotFound))
	})
}

func TestQueryUseCase(t *testing.T) {
	ctx := context.Background()
	repo := &MockQueryRepository{}
	uc := usecase.NewQueryUseCase(repo, zap.NewNop())

	repo.On("Save", ctx, mock.MatchedBy(func(q *domain.SavedQuery) bool {
		return q.Name == "wages" && len(q.Indicators) == 2
	})).Return(nil)
	repo.On("GetByName", ctx, "wages").Return(&domain.SavedQuery{Name: "wages"}, nil)
	repo.On("GetByName", ctx, "missing").Return(nil, nil)
	repo.On("GetByName", ctx, "broken").Return(nil, errors.New("timeout"))
	repo.On("Delete", ctx, "missing").Return(false, nil)

	q, err := uc.Save(ctx, dto.SaveQueryRequest{Name: "wages", Indicators: []string{"GDP", "Level of wages"}})
	require.NoError(t, err)
	assert.Equal(t, "wages", q.Name)

	got, err := uc.Get(ctx, "wages")
	require.NoError(t, err)
	assert.Equal(t, "wages", got.Name)

	_, err = uc.Get(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrQueryNotFound))

	_, err = uc.Get(ctx, "broken")
	assert.True(t, errors.Is(err, apperrors.ErrDatabaseError))

	assert.True(t, errors.Is(uc.Delete(ctx, "missing"), apperrors.ErrQueryNotFound))
}
