package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/catalog"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/pkg/utils"
	"github.com/indicator-dashboard/internal/series"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

const (
	DefaultStartupCount = 100
	MaxStartupCount     = 1000
	HistogramBins       = 20
)

// StartupUseCase генерирует оценки стартапов по направлениям
type StartupUseCase struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewStartupUseCase(cat *catalog.Catalog, logger *zap.Logger) *StartupUseCase {
	return &StartupUseCase{catalog: cat, logger: logger}
}

// Scores возвращает оценки count стартапов и гистограмму общего балла
func (uc *StartupUseCase) Scores(ctx context.Context, count int, selection string) (*dto.StartupScoresResponse, error) {
	if count < 1 || count > MaxStartupCount {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"count": fmt.Sprintf("must be between 1 and %d", MaxStartupCount),
		})
	}

	scores, err := series.StartupScores(count, uc.catalog.Pillars, utils.NewRand(selection))
	if err != nil {
		return nil, fmt.Errorf("startup scores: %w", err)
	}

	overall := make([]float64, len(scores))
	for i, s := range scores {
		overall[i] = s.OverallScore
	}

	uc.logger.Debug("Startup scores generated",
		zap.Int("count", count),
		zap.Int("pillars", len(uc.catalog.Pillars)))

	return &dto.StartupScoresResponse{
		Pillars:   uc.catalog.Pillars,
		Scores:    scores,
		Histogram: series.Histogram(overall, HistogramBins),
	}, nil
}
