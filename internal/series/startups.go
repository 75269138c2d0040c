package series

import (
	"math/rand/v2"

	"github.com/indicator-dashboard/internal/domain"
)

const (
	minPillarScore = 1.0
	maxPillarScore = 10.0
)

// StartupScores генерирует оценки count стартапов по направлениям pillars
// (равномерно от 1 до 10) и общий балл как среднее по направлениям.
func StartupScores(count int, pillars []string, rng *rand.Rand) ([]domain.StartupScore, error) {
	if rng == nil {
		return nil, ErrNilRandSource
	}
	if count <= 0 {
		return []domain.StartupScore{}, nil
	}

	scores := make([]domain.StartupScore, count)
	for i := range scores {
		s := domain.StartupScore{
			StartupID:    i + 1,
			PillarScores: make(map[string]float64, len(pillars)),
		}
		var total float64
		for _, p := range pillars {
			v := minPillarScore + (maxPillarScore-minPillarScore)*rng.Float64()
			s.PillarScores[p] = v
			total += v
		}
		if len(pillars) > 0 {
			s.OverallScore = total / float64(len(pillars))
		}
		scores[i] = s
	}
	return scores, nil
}

// Histogram раскладывает значения по bins равным интервалам [min, max]
func Histogram(values []float64, bins int) []domain.HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return []domain.HistogramBin{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]domain.HistogramBin, bins)
	width := (hi - lo) / float64(bins)
	for i := range out {
		out[i].From = lo + width*float64(i)
		out[i].To = lo + width*float64(i+1)
	}
	out[bins-1].To = hi

	for _, v := range values {
		idx := bins - 1
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		out[idx].Count++
	}
	return out
}
