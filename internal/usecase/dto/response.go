package dto

import (
	"github.com/indicator-dashboard/internal/catalog"
	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/workforce"
)

// ChartResponse - данные для отрисовки графика
type ChartResponse struct {
	Indicator string             `json:"indicator"`
	PlotType  domain.PlotType    `json:"plot_type"`
	Color     string             `json:"color"`
	Threshold *float64           `json:"threshold,omitempty"`
	Points    []domain.DataPoint `json:"points"`
	Total     int                `json:"total"`
}

// IndustryIndicatorsResponse - итоговый список индикаторов отрасли
type IndustryIndicatorsResponse struct {
	Industry   string                `json:"industry"`
	Indicators []IndicatorDescriptor `json:"indicators"`
}

// IndicatorDescriptor - индикатор с типом графика
type IndicatorDescriptor struct {
	Name     string          `json:"name"`
	PlotType domain.PlotType `json:"plot_type"`
}

// ReservistsResponse - круговая диаграмма резервистов
type ReservistsResponse struct {
	Indicator string                   `json:"indicator"`
	Shares    []catalog.ReservistShare `json:"shares"`
}

// StartupScoresResponse - оценки стартапов и гистограмма общего балла
type StartupScoresResponse struct {
	Pillars   []string              `json:"pillars"`
	Scores    []domain.StartupScore `json:"scores"`
	Histogram []domain.HistogramBin `json:"histogram"`
}

// NarrativeJobCreatedResponse - ответ на постановку фоновой интерпретации
type NarrativeJobCreatedResponse struct {
	JobID  string           `json:"job_id"`
	Status domain.JobStatus `json:"status"`
}

// AttritionResponse - годовая текучесть компании и бенчмарка
type AttritionResponse struct {
	Company   []workforce.AttritionRate `json:"company"`
	Benchmark []workforce.AttritionRate `json:"benchmark,omitempty"`
}
