package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/catalog"
	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/series"
	"github.com/indicator-dashboard/internal/usecase"
)

var fixedNow = time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)

const testCatalogYAML = `
industries:
  - name: Construction
    groups:
      Activity: [Rising, Map of Construction Sites]
      Labor: [Flat, Percentage of Reservists per Industry]
  - name: Retail
    groups:
      Sales: [Flat]
shared_indicators: [Interest Rates]
plot_types:
  Rising: bar
reservists:
  Construction: 60
  Retail: 40
pillars: [Team, Product, Funding]
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalogYAML))
	require.NoError(t, err)
	return c
}

// Flat: константа 10, Rising: значение равно номеру недели (0..623)
func testGenerator() *series.Generator {
	reg := series.NewRegistry([]domain.IndicatorSpec{
		{Name: "Flat", Distribution: domain.DistributionLinear, Params: []float64{10, 10}},
		{Name: "Rising", Distribution: domain.DistributionLinear, Params: []float64{0, 623}},
		{Name: "Interest Rates", Distribution: domain.DistributionUniform, Params: []float64{1, 2}},
	})
	return series.NewGenerator(
		series.WithClock(func() time.Time { return fixedNow }),
		series.WithRegistry(reg),
		series.WithoutNoise(),
	)
}

func newSeriesUseCase(t *testing.T) *usecase.SeriesUseCase {
	t.Helper()
	return usecase.NewSeriesUseCase(testGenerator(), testCatalog(t), nil, zap.NewNop())
}
