package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/catalog"
	"github.com/indicator-dashboard/internal/deviation"
	"github.com/indicator-dashboard/internal/domain"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/pkg/metrics"
	"github.com/indicator-dashboard/internal/pkg/utils"
	"github.com/indicator-dashboard/internal/series"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

const (
	// ChartWindow - сколько последних недель показывает компактный график
	ChartWindow = 24
	// MaxTail - верхняя граница для запроса последних точек
	MaxTail = series.SeriesLength

	colorBelowThreshold = "red"
	colorDefault        = "blue"
)

// SeriesUseCase обрабатывает генерацию рядов, графиков и метрики отклонения
type SeriesUseCase struct {
	generator *series.Generator
	catalog   *catalog.Catalog
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewSeriesUseCase создает новый экземпляр SeriesUseCase
func NewSeriesUseCase(
	generator *series.Generator,
	cat *catalog.Catalog,
	m *metrics.Metrics,
	logger *zap.Logger,
) *SeriesUseCase {
	return &SeriesUseCase{
		generator: generator,
		catalog:   cat,
		metrics:   m,
		logger:    logger,
	}
}

// GetSeries генерирует ряд индикатора; одинаковый selection даёт одинаковый ряд
func (uc *SeriesUseCase) GetSeries(ctx context.Context, name, selection string) (*domain.SeriesResult, error) {
	if name == "" {
		return nil, apperrors.ErrInvalidRequest.WithMessage("indicator name is required")
	}

	res, err := uc.generator.Generate(name, utils.NewRand(selection))
	if err != nil {
		uc.logger.Error("Failed to generate series",
			zap.String("indicator", name),
			zap.Error(err))
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}

	uc.metrics.ObserveSeries(string(res.Kind))
	uc.logger.Debug("Series generated",
		zap.String("indicator", name),
		zap.String("kind", string(res.Kind)),
		zap.String("selection", selection))

	return res, nil
}

// GetTimeSeries - как GetSeries, но отклоняет гео-индикаторы
func (uc *SeriesUseCase) GetTimeSeries(ctx context.Context, name, selection string) (*domain.TimeSeries, error) {
	res, err := uc.GetSeries(ctx, name, selection)
	if err != nil {
		return nil, err
	}
	if res.IsGeo() {
		return nil, apperrors.ErrInvalidIndicator.WithDetails(map[string]interface{}{
			"indicator": name,
			"reason":    "indicator is a set of map points, not a time series",
		})
	}
	return res.Series, nil
}

// GetChart возвращает данные графика: тип, цвет и точки.
// Цвет красный, если последнее значение ниже порога.
func (uc *SeriesUseCase) GetChart(ctx context.Context, req dto.ChartRequest) (*dto.ChartResponse, error) {
	ts, err := uc.GetTimeSeries(ctx, req.Indicator, req.Selection)
	if err != nil {
		return nil, err
	}

	points := series.Tail(ts, ts.Len())
	if !req.Detailed {
		points = series.Tail(ts, ChartWindow)
	}

	color := colorDefault
	if req.Threshold != nil && ts.Len() > 0 && ts.Values[ts.Len()-1] < *req.Threshold {
		color = colorBelowThreshold
	}

	return &dto.ChartResponse{
		Indicator: req.Indicator,
		PlotType:  uc.catalog.PlotType(req.Indicator),
		Color:     color,
		Threshold: req.Threshold,
		Points:    points,
		Total:     ts.Len(),
	}, nil
}

// GetTail возвращает последние n точек ряда
func (uc *SeriesUseCase) GetTail(ctx context.Context, name, selection string, n int) ([]domain.DataPoint, error) {
	if n <= 0 || n > MaxTail {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"n": fmt.Sprintf("must be between 1 and %d", MaxTail),
		})
	}

	ts, err := uc.GetTimeSeries(ctx, name, selection)
	if err != nil {
		return nil, err
	}
	return series.Tail(ts, n), nil
}

// GetDeviation считает отклонение последних недель от среднего за год
func (uc *SeriesUseCase) GetDeviation(ctx context.Context, name, selection string) (*domain.Deviation, error) {
	ts, err := uc.GetTimeSeries(ctx, name, selection)
	if err != nil {
		return nil, err
	}

	d, err := deviation.CalculateSeries(ts)
	if err != nil {
		uc.logger.Error("Failed to calculate deviation",
			zap.String("indicator", name),
			zap.Error(err))
		return nil, fmt.Errorf("deviation of %s: %w", name, err)
	}
	return d, nil
}
