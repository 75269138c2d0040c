package deviation_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indicator-dashboard/internal/deviation"
	"github.com/indicator-dashboard/internal/domain"
)

func build(baseline, recent float64) []float64 {
	values := make([]float64, 0, deviation.MinPoints)
	for i := 0; i < deviation.BaselineWindow; i++ {
		values = append(values, baseline)
	}
	for i := 0; i < deviation.RecentWindow; i++ {
		values = append(values, recent)
	}
	return values
}

func TestCalculate(t *testing.T) {
	t.Run("recent doubles baseline", func(t *testing.T) {
		d, err := deviation.Calculate(build(5, 10))
		require.NoError(t, err)
		assert.True(t, d.Available)
		assert.Equal(t, 5.0, d.AvgDifference)
		assert.Equal(t, 100.0, d.PctDifference)
		assert.Equal(t, 10.0, d.RecentMean)
		assert.Equal(t, 5.0, d.BaselineMean)
	})

	t.Run("short series is insufficient", func(t *testing.T) {
		d, err := deviation.Calculate([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
		require.NoError(t, err)
		assert.False(t, d.Available)

		d, err = deviation.Calculate(make([]float64, deviation.MinPoints-1))
		require.NoError(t, err)
		assert.False(t, d.Available)
	})

	t.Run("zero baseline guards division", func(t *testing.T) {
		d, err := deviation.Calculate(build(0, 7))
		require.NoError(t, err)
		assert.True(t, d.Available)
		assert.Equal(t, 7.0, d.AvgDifference)
		assert.Equal(t, 0.0, d.PctDifference)
	})

	t.Run("only trailing 55 points count", func(t *testing.T) {
		values := append([]float64{1000, 1000, 1000}, build(4, 2)...)
		d, err := deviation.Calculate(values)
		require.NoError(t, err)
		assert.Equal(t, -2.0, d.AvgDifference)
		assert.Equal(t, -50.0, d.PctDifference)
	})

	t.Run("NaN fails loudly", func(t *testing.T) {
		values := build(1, 1)
		values[len(values)-1] = math.NaN()
		_, err := deviation.Calculate(values)
		assert.ErrorIs(t, err, deviation.ErrInvalidValue)

		values = build(1, 1)
		values[10] = math.Inf(1)
		_, err = deviation.Calculate(values)
		assert.ErrorIs(t, err, deviation.ErrInvalidValue)
	})
}

func TestCalculateSeries(t *testing.T) {
	values := build(5, 10)
	dates := make([]time.Time, len(values))

	d, err := deviation.CalculateSeries(&domain.TimeSeries{Dates: dates, Values: values})
	require.NoError(t, err)
	assert.Equal(t, 100.0, d.PctDifference)

	_, err = deviation.CalculateSeries(&domain.TimeSeries{Dates: dates[:3], Values: values})
	assert.ErrorIs(t, err, deviation.ErrMalformedSeries)

	d, err = deviation.CalculateSeries(nil)
	require.NoError(t, err)
	assert.False(t, d.Available)
}
