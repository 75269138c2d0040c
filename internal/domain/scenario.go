package domain

import "time"

// Scenario - сохранённый сценарий анализа: цель и набор вызовов,
// каждый вызов ссылается на список индикаторов
type Scenario struct {
	Name       string              `json:"name" db:"name"`
	Goal       string              `json:"goal" db:"goal"`
	Challenges map[string][]string `json:"challenges" db:"-"`
	CreatedAt  time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" db:"updated_at"`
}

// ChallengeIndicators возвращает индикаторы вызова
func (s *Scenario) ChallengeIndicators(challenge string) ([]string, bool) {
	indicators, ok := s.Challenges[challenge]
	return indicators, ok
}

// SavedQuery - сохранённый запрос генеративного режима
type SavedQuery struct {
	Name           string    `json:"name" db:"name"`
	Indicators     []string  `json:"indicators" db:"-"`
	Interpretation string    `json:"interpretation" db:"interpretation"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Industry - отрасль с группами индикаторов по умолчанию
type Industry struct {
	Name   string              `json:"name" yaml:"name"`
	Groups map[string][]string `json:"groups" yaml:"groups"`
}

// StartupScore - оценки стартапа по направлениям
type StartupScore struct {
	StartupID    int                `json:"startup_id"`
	PillarScores map[string]float64 `json:"pillar_scores"`
	OverallScore float64            `json:"overall_score"`
}

// HistogramBin - интервал гистограммы
type HistogramBin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}
