// Package workforce считает кадровые метрики компании: годовую текучесть
// по датам найма и увольнения и сводку по отзывам сотрудников.
package workforce

import (
	"errors"
	"sort"
	"time"
)

// ErrEndBeforeStart - дата увольнения раньше даты найма
var ErrEndBeforeStart = errors.New("workforce: end date is before start date")

// EmploymentRecord - период работы сотрудника; EndDate == nil - работает сейчас
type EmploymentRecord struct {
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// AttritionRate - текучесть за год
type AttritionRate struct {
	Year         int     `json:"year"`
	Headcount    int     `json:"headcount"`
	Terminations int     `json:"terminations"`
	Rate         float64 `json:"rate"`
}

// Validate проверяет, что период не перевёрнут
func (r EmploymentRecord) Validate() error {
	if r.StartDate.IsZero() {
		return errors.New("workforce: start date is required")
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}

// Attrition считает текучесть по годам найма.
// Для года Y: Headcount - все нанятые не позже Y, Terminations - те из них,
// кто уволился в Y. Годы берутся из дат найма, по возрастанию.
// Записи без даты найма пропускаются.
func Attrition(records []EmploymentRecord) []AttritionRate {
	startYears := make(map[int]struct{})
	for _, r := range records {
		if r.StartDate.IsZero() {
			continue
		}
		startYears[r.StartDate.Year()] = struct{}{}
	}

	years := make([]int, 0, len(startYears))
	for y := range startYears {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]AttritionRate, 0, len(years))
	for _, year := range years {
		rate := AttritionRate{Year: year}
		for _, r := range records {
			if r.StartDate.IsZero() || r.StartDate.Year() > year {
				continue
			}
			rate.Headcount++
			if r.EndDate != nil && r.EndDate.Year() == year {
				rate.Terminations++
			}
		}
		if rate.Headcount > 0 {
			rate.Rate = float64(rate.Terminations) / float64(rate.Headcount)
		}
		out = append(out, rate)
	}
	return out
}
