package domain

import "time"

// Зарезервированные индикаторы с нестандартным представлением
const (
	GeoIndicatorName       = "Map of Construction Sites"
	ReservistIndicatorName = "Percentage of Reservists per Industry"
)

// SeriesKind - тип результата генератора
type SeriesKind string

const (
	SeriesKindTimeSeries SeriesKind = "time_series"
	SeriesKindGeoPoints  SeriesKind = "geo_points"
)

// DistributionKind - правило генерации базовых значений индикатора
type DistributionKind string

const (
	DistributionZero        DistributionKind = "zero"
	DistributionUniform     DistributionKind = "uniform"
	DistributionLinear      DistributionKind = "linear"
	DistributionLinearNoise DistributionKind = "linear_noise"
	DistributionNormal      DistributionKind = "normal"
	DistributionRandInt     DistributionKind = "randint"
	DistributionChoice      DistributionKind = "choice"
)

// ShockPolicy - сценарий кризисного воздействия на ряд
type ShockPolicy string

const (
	ShockNone     ShockPolicy = "none"
	ShockIncrease ShockPolicy = "increase"
	ShockDecrease ShockPolicy = "decrease"
)

// PlotType - тип графика для индикатора
type PlotType string

const (
	PlotLine PlotType = "line"
	PlotBar  PlotType = "bar"
	PlotArea PlotType = "area"
)

// Valid проверяет, что тип графика известен
func (p PlotType) Valid() bool {
	switch p {
	case PlotLine, PlotBar, PlotArea:
		return true
	}
	return false
}

// IndicatorSpec - неизменяемое описание правила генерации индикатора
type IndicatorSpec struct {
	Name         string           `json:"name"`
	Distribution DistributionKind `json:"distribution"`
	// Params зависят от Distribution:
	// uniform/randint: [low, high), linear: [start, stop],
	// linear_noise: [start, stop, std], normal: [mean, std], choice: варианты.
	Params []float64   `json:"params,omitempty"`
	Noise  bool        `json:"noise"`
	Shock  ShockPolicy `json:"shock"`
}

// TimeSeries - недельный временной ряд
type TimeSeries struct {
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}

// Len возвращает количество точек ряда
func (ts *TimeSeries) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.Values)
}

// GeoPoint - координаты точки на карте
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SeriesResult - результат генератора: временной ряд либо набор гео-точек
type SeriesResult struct {
	Indicator string      `json:"indicator"`
	Kind      SeriesKind  `json:"kind"`
	Series    *TimeSeries `json:"series,omitempty"`
	Points    []GeoPoint  `json:"points,omitempty"`
}

// IsGeo проверяет, является ли результат набором гео-точек
func (r *SeriesResult) IsGeo() bool {
	return r.Kind == SeriesKindGeoPoints
}

// DataPoint - пара (дата, значение)
type DataPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Deviation - отклонение среднего за последние недели от среднего за год
type Deviation struct {
	Available     bool    `json:"available"`
	AvgDifference float64 `json:"avg_difference"`
	PctDifference float64 `json:"pct_difference"`
	RecentMean    float64 `json:"recent_mean"`
	BaselineMean  float64 `json:"baseline_mean"`
}
