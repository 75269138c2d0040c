// Package series генерирует синтетические недельные ряды для индикаторов дашборда.
//
// Генератор не хранит состояния между вызовами: источник случайных чисел
// передаётся вызывающей стороной, поэтому одинаковый seed даёт одинаковый ряд.
package series

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/indicator-dashboard/internal/domain"
)

const (
	WeeksPerYear = 52
	HistoryYears = 12
	// SeriesLength - длина любого временного ряда генератора
	SeriesLength = HistoryYears * WeeksPerYear

	NoiseScale    = 0.03
	IncreaseScale = 2.0
	DecreaseScale = 0.5
)

// CrisisAnchor - дата начала сценарного кризиса
var CrisisAnchor = time.Date(2023, time.October, 7, 0, 0, 0, 0, time.UTC)

var (
	ErrNilRandSource = errors.New("series: nil random source")
	ErrInvalidSpec   = errors.New("series: invalid indicator spec")
)

var constructionSites = []domain.GeoPoint{
	{Lat: 32.0853, Lon: 34.7818}, // Tel Aviv
	{Lat: 31.7683, Lon: 35.2137}, // Jerusalem
	{Lat: 32.7940, Lon: 34.9896}, // Haifa
	{Lat: 31.2518, Lon: 34.7913}, // Beersheba
	{Lat: 29.5581, Lon: 34.9519}, // Eilat
}

// Option настраивает Generator
type Option func(*Generator)

// WithClock подменяет источник текущей даты
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRegistry подменяет реестр индикаторов
func WithRegistry(r *Registry) Option {
	return func(g *Generator) {
		g.registry = r
	}
}

// WithoutNoise отключает пропорциональный шум
func WithoutNoise() Option {
	return func(g *Generator) {
		g.noise = false
	}
}

// Generator - генератор синтетических рядов
type Generator struct {
	registry *Registry
	now      func() time.Time
	noise    bool
}

// NewGenerator создает генератор со встроенным реестром
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		registry: DefaultRegistry(),
		now:      time.Now,
		noise:    true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Registry возвращает реестр индикаторов генератора
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Generate строит ряд для индикатора. Неизвестный индикатор даёт ряд из нулей.
func (g *Generator) Generate(name string, rng *rand.Rand) (*domain.SeriesResult, error) {
	if name == domain.GeoIndicatorName {
		points := make([]domain.GeoPoint, len(constructionSites))
		copy(points, constructionSites)
		return &domain.SeriesResult{
			Indicator: name,
			Kind:      domain.SeriesKindGeoPoints,
			Points:    points,
		}, nil
	}

	if rng == nil {
		return nil, ErrNilRandSource
	}

	dates := WeeklyDates(g.today(), SeriesLength)

	spec, ok := g.registry.Lookup(name)
	if !ok {
		spec = domain.IndicatorSpec{Name: name, Distribution: domain.DistributionZero, Shock: domain.ShockNone}
	}

	values, err := baseline(spec, SeriesLength, rng)
	if err != nil {
		return nil, err
	}

	// Шум всегда до шока
	if g.noise && spec.Noise {
		addProportionalNoise(values, NoiseScale, rng)
	}

	crisisIndex := CrisisIndex(dates, CrisisAnchor)
	switch spec.Shock {
	case domain.ShockIncrease:
		applyRamp(values, crisisIndex, IncreaseScale)
	case domain.ShockDecrease:
		applyRamp(values, crisisIndex, DecreaseScale)
	}

	for i, v := range values {
		if v < 0 {
			values[i] = 0
		}
	}

	return &domain.SeriesResult{
		Indicator: name,
		Kind:      domain.SeriesKindTimeSeries,
		Series:    &domain.TimeSeries{Dates: dates, Values: values},
	}, nil
}

// today - календарная дата в зоне часов генератора, записанная как полночь UTC.
// Переводить now в UTC до Date() нельзя: вечером по местному времени дата уедет на день вперёд.
func (g *Generator) today() time.Time {
	now := g.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeeklyDates возвращает n дат с шагом в неделю, начиная с today минус n недель
func WeeklyDates(today time.Time, n int) []time.Time {
	start := today.AddDate(0, 0, -7*n)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, 7*i)
	}
	return dates
}

// CrisisIndex возвращает индекс даты, ближайшей к anchor (первой при равенстве).
// Для пустого набора возвращает -1.
func CrisisIndex(dates []time.Time, anchor time.Time) int {
	best := -1
	var bestDist time.Duration
	for i, d := range dates {
		dist := d.Sub(anchor)
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

// Linspace - n равномерно распределённых значений от start до stop включительно
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}

// Tail возвращает последние n точек ряда
func Tail(ts *domain.TimeSeries, n int) []domain.DataPoint {
	if ts == nil || n <= 0 {
		return []domain.DataPoint{}
	}
	size := len(ts.Values)
	if len(ts.Dates) < size {
		size = len(ts.Dates)
	}
	from := size - n
	if from < 0 {
		from = 0
	}
	points := make([]domain.DataPoint, 0, size-from)
	for i := from; i < size; i++ {
		points = append(points, domain.DataPoint{Date: ts.Dates[i], Value: ts.Values[i]})
	}
	return points
}

func baseline(spec domain.IndicatorSpec, n int, rng *rand.Rand) ([]float64, error) {
	p := spec.Params
	need := func(k int) error {
		if len(p) < k {
			return fmt.Errorf("%w: %q (%s) needs %d params, got %d", ErrInvalidSpec, spec.Name, spec.Distribution, k, len(p))
		}
		return nil
	}

	values := make([]float64, n)

	switch spec.Distribution {
	case domain.DistributionZero, "":
		// нули
	case domain.DistributionUniform:
		if err := need(2); err != nil {
			return nil, err
		}
		for i := range values {
			values[i] = p[0] + (p[1]-p[0])*rng.Float64()
		}
	case domain.DistributionLinear:
		if err := need(2); err != nil {
			return nil, err
		}
		values = Linspace(p[0], p[1], n)
	case domain.DistributionLinearNoise:
		if err := need(3); err != nil {
			return nil, err
		}
		values = Linspace(p[0], p[1], n)
		for i := range values {
			values[i] += p[2] * rng.NormFloat64()
		}
	case domain.DistributionNormal:
		if err := need(2); err != nil {
			return nil, err
		}
		for i := range values {
			values[i] = p[0] + p[1]*rng.NormFloat64()
		}
	case domain.DistributionRandInt:
		if err := need(2); err != nil {
			return nil, err
		}
		low, high := int(p[0]), int(p[1])
		if high <= low {
			return nil, fmt.Errorf("%w: %q randint high %d <= low %d", ErrInvalidSpec, spec.Name, high, low)
		}
		for i := range values {
			values[i] = float64(low + rng.IntN(high-low))
		}
	case domain.DistributionChoice:
		if err := need(1); err != nil {
			return nil, err
		}
		for i := range values {
			values[i] = p[rng.IntN(len(p))]
		}
	default:
		return nil, fmt.Errorf("%w: %q unknown distribution %q", ErrInvalidSpec, spec.Name, spec.Distribution)
	}

	return values, nil
}

func addProportionalNoise(values []float64, scale float64, rng *rand.Rand) {
	for i, v := range values {
		values[i] = v + rng.NormFloat64()*math.Abs(v)*scale
	}
}

// applyRamp умножает хвост ряда начиная с index на линейный множитель от 1 до scale
func applyRamp(values []float64, index int, scale float64) {
	if index < 0 || index >= len(values) {
		return
	}
	factors := Linspace(1, scale, len(values)-index)
	for i, f := range factors {
		values[index+i] *= f
	}
}
