package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

func names(ds []dto.IndicatorDescriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}

func TestDashboardUseCase_IndustryIndicators(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDashboardUseCase(testCatalog(t), zap.NewNop())

	t.Run("defaults only", func(t *testing.T) {
		resp, err := uc.IndustryIndicators(ctx, dto.IndustryIndicatorsRequest{Industry: "Construction"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Rising", domain.GeoIndicatorName, "Flat", domain.ReservistIndicatorName}, names(resp.Indicators))
		assert.Equal(t, domain.PlotBar, resp.Indicators[0].PlotType)
	})

	t.Run("extra and shared without duplicates", func(t *testing.T) {
		resp, err := uc.IndustryIndicators(ctx, dto.IndustryIndicatorsRequest{
			Industry: "Retail",
			Extra:    []string{"Rising", "Flat"},
			Shared:   []string{"Interest Rates"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Flat", "Rising", "Interest Rates"}, names(resp.Indicators))
	})

	t.Run("unknown industry", func(t *testing.T) {
		_, err := uc.IndustryIndicators(ctx, dto.IndustryIndicatorsRequest{Industry: "Mining"})
		assert.True(t, errors.Is(err, apperrors.ErrIndustryNotFound))
	})

	t.Run("unknown extra", func(t *testing.T) {
		_, err := uc.IndustryIndicators(ctx, dto.IndustryIndicatorsRequest{Industry: "Retail", Extra: []string{"Bogus"}})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
	})

	t.Run("shared must be from shared list", func(t *testing.T) {
		_, err := uc.IndustryIndicators(ctx, dto.IndustryIndicatorsRequest{Industry: "Retail", Shared: []string{"Rising"}})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
	})
}

func TestDashboardUseCase_Catalog(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDashboardUseCase(testCatalog(t), zap.NewNop())

	assert.Len(t, uc.Industries(ctx), 2)
	assert.Contains(t, names(uc.Indicators(ctx)), "Interest Rates")

	res := uc.Reservists(ctx)
	assert.Equal(t, domain.ReservistIndicatorName, res.Indicator)
	require.Len(t, res.Shares, 2)
	assert.Equal(t, "Construction", res.Shares[0].Industry)
	assert.Equal(t, 60.0, res.Shares[0].Percent)
}

func TestStartupUseCase_Scores(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewStartupUseCase(testCatalog(t), zap.NewNop())

	resp, err := uc.Scores(ctx, 50, "Acme")
	require.NoError(t, err)
	assert.Len(t, resp.Scores, 50)
	assert.Len(t, resp.Histogram, usecase.HistogramBins)
	assert.Equal(t, []string{"Team", "Product", "Funding"}, resp.Pillars)

	total := 0
	for _, bin := range resp.Histogram {
		total += bin.Count
	}
	assert.Equal(t, 50, total)

	for _, s := range resp.Scores {
		assert.Len(t, s.PillarScores, 3)
		assert.GreaterOrEqual(t, s.OverallScore, 1.0)
		assert.Less(t, s.OverallScore, 10.0)
	}

	again, err := uc.Scores(ctx, 50, "Acme")
	require.NoError(t, err)
	assert.Equal(t, resp.Scores, again.Scores)

	_, err = uc.Scores(ctx, 0, "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
	_, err = uc.Scores(ctx, usecase.MaxStartupCount+1, "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
}
