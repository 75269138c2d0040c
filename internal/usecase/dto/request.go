package dto

import "github.com/indicator-dashboard/internal/workforce"

// ChartRequest - запрос данных графика индикатора
type ChartRequest struct {
	Indicator string   `json:"indicator" validate:"required,max=200"`
	Selection string   `json:"selection" validate:"max=200"`
	Detailed  bool     `json:"detailed"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// IndustryIndicatorsRequest - индикаторы отрасли с дополнительными и общими
type IndustryIndicatorsRequest struct {
	Industry string   `json:"industry" validate:"required"`
	Extra    []string `json:"extra,omitempty" validate:"omitempty,max=50,dive,required"`
	Shared   []string `json:"shared,omitempty" validate:"omitempty,max=20,dive,required"`
}

// InterpretIndicatorsRequest - запрос интерпретации набора индикаторов
type InterpretIndicatorsRequest struct {
	Indicators []string `json:"indicators" validate:"required,min=1,max=20,dive,required"`
	Selection  string   `json:"selection,omitempty" validate:"max=200"`
}

// SelectIndicatorsRequest - инструкция для подбора индикаторов
type SelectIndicatorsRequest struct {
	Instruction string `json:"instruction" validate:"required,min=3,max=2000"`
}

// CreateNarrativeJobRequest - фоновая интерпретация: индикаторы либо сценарий с вызовом
type CreateNarrativeJobRequest struct {
	Indicators []string `json:"indicators,omitempty" validate:"required_without=Scenario,omitempty,max=20,dive,required"`
	Scenario   string   `json:"scenario,omitempty" validate:"required_with=Challenge,max=200"`
	Challenge  string   `json:"challenge,omitempty" validate:"required_with=Scenario,max=200"`
	Selection  string   `json:"selection,omitempty" validate:"max=200"`
}

// SaveScenarioRequest - создание или перезапись сценария
type SaveScenarioRequest struct {
	Name       string              `json:"name" validate:"required,max=200"`
	Goal       string              `json:"goal" validate:"max=2000"`
	Challenges map[string][]string `json:"challenges" validate:"required,min=1,dive,keys,required,max=200,endkeys,min=1,dive,required"`
}

// SaveQueryRequest - сохранение запроса генеративного режима
type SaveQueryRequest struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Indicators     []string `json:"indicators" validate:"required,min=1,dive,required"`
	Interpretation string   `json:"interpretation" validate:"max=20000"`
}

// AttritionRequest - периоды работы сотрудников компании и, при желании, бенчмарка
type AttritionRequest struct {
	Company   []workforce.EmploymentRecord `json:"company" validate:"required,min=1,max=100000,dive"`
	Benchmark []workforce.EmploymentRecord `json:"benchmark,omitempty" validate:"omitempty,max=100000,dive"`
}

// ReviewStatsRequest - отзывы сотрудников для сводки
type ReviewStatsRequest struct {
	Reviews []workforce.Review `json:"reviews" validate:"required,min=1,max=10000,dive"`
}

// ReviewAnalysisRequest - отзывы и темы для разбора языковой моделью
type ReviewAnalysisRequest struct {
	Reviews []workforce.Review `json:"reviews" validate:"required,min=1,max=500,dive"`
	Topics  []string           `json:"topics" validate:"required,min=1,max=20,dive,required,max=200"`
}
