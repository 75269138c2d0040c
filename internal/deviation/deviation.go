// Package deviation сравнивает среднее за последние недели со средним за предшествующий год.
package deviation

import (
	"errors"
	"fmt"
	"math"

	"github.com/indicator-dashboard/internal/domain"
)

const (
	RecentWindow   = 3
	BaselineWindow = 52
	// MinPoints - минимальная длина ряда, при которой метрика определена
	MinPoints = RecentWindow + BaselineWindow
)

var (
	ErrInvalidValue    = errors.New("deviation: series contains NaN or Inf")
	ErrMalformedSeries = errors.New("deviation: dates and values length mismatch")
)

// Calculate считает отклонение последних RecentWindow значений от BaselineWindow
// предшествующих. Для короткого ряда возвращает Deviation{Available: false}.
func Calculate(values []float64) (*domain.Deviation, error) {
	n := len(values)
	if n < MinPoints {
		return &domain.Deviation{Available: false}, nil
	}

	recent := values[n-RecentWindow:]
	baseline := values[n-MinPoints : n-RecentWindow]

	recentMean, err := mean(recent)
	if err != nil {
		return nil, fmt.Errorf("recent window: %w", err)
	}
	baselineMean, err := mean(baseline)
	if err != nil {
		return nil, fmt.Errorf("baseline window: %w", err)
	}

	avgDiff := recentMean - baselineMean
	pctDiff := 0.0
	if baselineMean != 0 {
		pctDiff = avgDiff / baselineMean * 100
	}

	return &domain.Deviation{
		Available:     true,
		AvgDifference: avgDiff,
		PctDifference: pctDiff,
		RecentMean:    recentMean,
		BaselineMean:  baselineMean,
	}, nil
}

// CalculateSeries проверяет согласованность ряда и считает отклонение по его значениям
func CalculateSeries(ts *domain.TimeSeries) (*domain.Deviation, error) {
	if ts == nil {
		return &domain.Deviation{Available: false}, nil
	}
	if len(ts.Dates) != len(ts.Values) {
		return nil, fmt.Errorf("%w: %d dates, %d values", ErrMalformedSeries, len(ts.Dates), len(ts.Values))
	}
	return Calculate(ts.Values)
}

func mean(values []float64) (float64, error) {
	var sum float64
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w at offset %d", ErrInvalidValue, i)
		}
		sum += v
	}
	return sum / float64(len(values)), nil
}
