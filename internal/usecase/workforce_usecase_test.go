package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/usecase/dto"
	"github.com/indicator-dashboard/internal/workforce"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkforceUseCase_Attrition(t *testing.T) {
	uc := usecase.NewWorkforceUseCase(zap.NewNop())
	ctx := context.Background()
	left := date(2021, 4, 1)

	t.Run("company and benchmark", func(t *testing.T) {
		resp, err := uc.Attrition(ctx, dto.AttritionRequest{
			Company: []workforce.EmploymentRecord{
				{StartDate: date(2020, 1, 1), EndDate: &left},
				{StartDate: date(2021, 1, 1)},
			},
			Benchmark: []workforce.EmploymentRecord{
				{StartDate: date(2019, 1, 1)},
			},
		})
		require.NoError(t, err)

		require.Len(t, resp.Company, 2)
		assert.Equal(t, 2021, resp.Company[1].Year)
		assert.InDelta(t, 0.5, resp.Company[1].Rate, 1e-12)
		require.Len(t, resp.Benchmark, 1)
		assert.Equal(t, 2019, resp.Benchmark[0].Year)
	})

	t.Run("without benchmark", func(t *testing.T) {
		resp, err := uc.Attrition(ctx, dto.AttritionRequest{
			Company: []workforce.EmploymentRecord{{StartDate: date(2020, 1, 1)}},
		})
		require.NoError(t, err)
		assert.Nil(t, resp.Benchmark)
	})

	t.Run("end before start", func(t *testing.T) {
		early := date(2019, 1, 1)
		_, err := uc.Attrition(ctx, dto.AttritionRequest{
			Company: []workforce.EmploymentRecord{{StartDate: date(2020, 1, 1), EndDate: &early}},
		})
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrInvalidRequest.Code, appErr.Code)
		assert.Contains(t, appErr.Details, "company[0]")
	})

	t.Run("no records", func(t *testing.T) {
		_, err := uc.Attrition(ctx, dto.AttritionRequest{})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
	})
}

func TestWorkforceUseCase_ReviewStats(t *testing.T) {
	uc := usecase.NewWorkforceUseCase(zap.NewNop())

	stats, err := uc.ReviewStats(context.Background(), []workforce.Review{
		{Date: date(2023, 1, 1), Rating: 5},
		{Date: date(2022, 1, 1), Rating: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 4.0, stats.AverageRating, 1e-12)

	_, err = uc.ReviewStats(context.Background(), nil)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
}

func TestNarrativeUseCase_AnalyzeReviews(t *testing.T) {
	ctx := context.Background()
	reviews := []workforce.Review{
		{Date: date(2023, 1, 1), Rating: 4, Pros: "Great team", Cons: "Long hours"},
		{Date: date(2023, 2, 1), Rating: 2, Cons: "Low pay"},
	}

	prompt, err := usecase.BuildReviewsPrompt(reviews, []string{"Culture", "Compensation"})
	require.NoError(t, err)
	assert.Equal(t,
		"Analyze these employee reviews and provide detailed insights on the following topics: "+
			"Culture, Compensation: Great team Long hours Low pay",
		prompt)

	t.Run("success", func(t *testing.T) {
		f := newNarrativeFixture(t)
		f.cache.On("GetInterpretation", ctx, usecase.PromptHash(prompt)).Return("", false, nil)
		f.client.On("Complete", ctx, prompt).Return("People like the team.", nil)
		f.cache.On("SetInterpretation", ctx, usecase.PromptHash(prompt), "People like the team.", cacheTTL).Return(nil)

		interp, err := f.uc.AnalyzeReviews(ctx, reviews, []string{"Culture", "Compensation"})
		require.NoError(t, err)
		assert.Equal(t, "People like the team.", interp.Text)
		f.client.AssertExpectations(t)
	})

	t.Run("reviews without text", func(t *testing.T) {
		f := newNarrativeFixture(t)
		_, err := f.uc.AnalyzeReviews(ctx, []workforce.Review{{Date: date(2023, 1, 1), Rating: 3}}, []string{"Culture"})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
		f.client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("model down", func(t *testing.T) {
		f := newNarrativeFixture(t)
		f.cache.On("GetInterpretation", ctx, mock.Anything).Return("", false, nil)
		f.client.On("Complete", ctx, mock.Anything).Return("", errors.New("503"))

		_, err := f.uc.AnalyzeReviews(ctx, reviews, []string{"Culture"})
		assert.True(t, errors.Is(err, apperrors.ErrNarrativeUnavailable))
	})
}
