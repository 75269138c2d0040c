package workforce_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indicator-dashboard/internal/workforce"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestAttrition(t *testing.T) {
	records := []workforce.EmploymentRecord{
		{StartDate: day(2020, 3, 1), EndDate: ptr(day(2021, 6, 1))},
		{StartDate: day(2020, 5, 1)},
		{StartDate: day(2021, 1, 10), EndDate: ptr(day(2021, 12, 31))},
		{StartDate: day(2022, 2, 1), EndDate: ptr(day(2023, 1, 1))},
		{},
	}

	rates := workforce.Attrition(records)
	require.Len(t, rates, 3)

	assert.Equal(t, workforce.AttritionRate{Year: 2020, Headcount: 2, Terminations: 0, Rate: 0}, rates[0])
	assert.Equal(t, 2021, rates[1].Year)
	assert.Equal(t, 3, rates[1].Headcount)
	assert.Equal(t, 2, rates[1].Terminations)
	assert.InDelta(t, 2.0/3.0, rates[1].Rate, 1e-12)

	// уволенные в 2023 не попадают: года без найма нет в ряду
	assert.Equal(t, workforce.AttritionRate{Year: 2022, Headcount: 4, Terminations: 0, Rate: 0}, rates[2])
}

func TestAttrition_Empty(t *testing.T) {
	assert.Empty(t, workforce.Attrition(nil))
	assert.Empty(t, workforce.Attrition([]workforce.EmploymentRecord{{}}))
}

func TestEmploymentRecord_Validate(t *testing.T) {
	assert.NoError(t, workforce.EmploymentRecord{StartDate: day(2020, 1, 1)}.Validate())
	assert.Error(t, workforce.EmploymentRecord{}.Validate())
	assert.ErrorIs(t,
		workforce.EmploymentRecord{StartDate: day(2020, 1, 1), EndDate: ptr(day(2019, 1, 1))}.Validate(),
		workforce.ErrEndBeforeStart)
}

func TestSummarizeReviews(t *testing.T) {
	reviews := []workforce.Review{
		{Date: day(2023, 5, 1), Rating: 4, Pros: "Great team", Cons: "Long hours"},
		{Date: day(2021, 1, 15), Rating: 2},
		{Date: day(2024, 2, 29), Rating: 3, Pros: "Remote"},
	}

	stats, err := workforce.SummarizeReviews(reviews)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, day(2021, 1, 15), stats.From)
	assert.Equal(t, day(2024, 2, 29), stats.To)
	assert.InDelta(t, 3.0, stats.AverageRating, 1e-12)
	require.Len(t, stats.Distribution, workforce.RatingBins)
	assert.Equal(t, 2.0, stats.Distribution[0].From)
	assert.Equal(t, 4.0, stats.Distribution[workforce.RatingBins-1].To)

	var total int
	for _, b := range stats.Distribution {
		total += b.Count
	}
	assert.Equal(t, 3, total)
}

func TestSummarizeReviews_Errors(t *testing.T) {
	_, err := workforce.SummarizeReviews(nil)
	assert.ErrorIs(t, err, workforce.ErrNoReviews)

	_, err = workforce.SummarizeReviews([]workforce.Review{{Date: day(2024, 1, 1), Rating: math.NaN()}})
	assert.ErrorIs(t, err, workforce.ErrInvalidRating)
}

func TestReviewCorpus(t *testing.T) {
	corpus := workforce.ReviewCorpus([]workforce.Review{
		{Pros: "Great team", Cons: "Long hours"},
		{},
		{Cons: "Low pay"},
	})
	assert.Equal(t, "Great team Long hours Low pay", corpus)
}

func TestParseEmploymentCSV(t *testing.T) {
	const data = "name;start_date;end_date\n" +
		"Dana;01/03/2020;15/06/2021\n" +
		"Avi;2020-05-01;\n" +
		"Noa;not a date;01/01/2022\n" +
		"Ron;10/01/2021;soon\n"

	records, err := workforce.ParseEmploymentCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, day(2020, 3, 1), records[0].StartDate)
	require.NotNil(t, records[0].EndDate)
	assert.Equal(t, day(2021, 6, 15), *records[0].EndDate)
	assert.Equal(t, day(2020, 5, 1), records[1].StartDate)
	assert.Nil(t, records[1].EndDate)
	assert.Equal(t, day(2021, 1, 10), records[2].StartDate)
	assert.Nil(t, records[2].EndDate)
}

func TestParseEmploymentCSV_Errors(t *testing.T) {
	_, err := workforce.ParseEmploymentCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = workforce.ParseEmploymentCSV(strings.NewReader("name;end_date\nDana;01/01/2020\n"))
	assert.ErrorContains(t, err, "start_date")
}
