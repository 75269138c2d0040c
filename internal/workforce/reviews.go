package workforce

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/series"
)

// RatingBins - число корзин распределения оценок
const RatingBins = 30

var (
	ErrNoReviews     = errors.New("workforce: no reviews")
	ErrInvalidRating = errors.New("workforce: rating is not a finite number")
)

// Review - отзыв сотрудника о компании
type Review struct {
	Date   time.Time `json:"date" validate:"required"`
	Rating float64   `json:"rating" validate:"gte=0,lte=5"`
	Pros   string    `json:"pros,omitempty" validate:"max=5000"`
	Cons   string    `json:"cons,omitempty" validate:"max=5000"`
}

// ReviewStats - сводка по отзывам
type ReviewStats struct {
	Count         int                   `json:"count"`
	From          time.Time             `json:"from"`
	To            time.Time             `json:"to"`
	AverageRating float64               `json:"average_rating"`
	Distribution  []domain.HistogramBin `json:"distribution"`
}

// SummarizeReviews считает число отзывов, диапазон дат, среднюю оценку
// и распределение оценок по RatingBins корзинам
func SummarizeReviews(reviews []Review) (*ReviewStats, error) {
	if len(reviews) == 0 {
		return nil, ErrNoReviews
	}

	stats := &ReviewStats{
		Count: len(reviews),
		From:  reviews[0].Date,
		To:    reviews[0].Date,
	}

	ratings := make([]float64, len(reviews))
	var sum float64
	for i, r := range reviews {
		if math.IsNaN(r.Rating) || math.IsInf(r.Rating, 0) {
			return nil, ErrInvalidRating
		}
		if r.Date.Before(stats.From) {
			stats.From = r.Date
		}
		if r.Date.After(stats.To) {
			stats.To = r.Date
		}
		ratings[i] = r.Rating
		sum += r.Rating
	}

	stats.AverageRating = sum / float64(len(reviews))
	stats.Distribution = series.Histogram(ratings, RatingBins)
	return stats, nil
}

// ReviewCorpus склеивает плюсы и минусы всех отзывов в один текст
func ReviewCorpus(reviews []Review) string {
	parts := make([]string, 0, len(reviews))
	for _, r := range reviews {
		if text := strings.TrimSpace(r.Pros + " " + r.Cons); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
