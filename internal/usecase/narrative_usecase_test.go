package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/usecase"
)

const cacheTTL = time.Hour

type narrativeFixture struct {
	client    *MockNarrativeClient
	cache     *MockCacheRepository
	scenarios *MockScenarioRepository
	uc        *usecase.NarrativeUseCase
}

func newNarrativeFixture(t *testing.T) *narrativeFixture {
	t.Helper()
	f := &narrativeFixture{
		client:    &MockNarrativeClient{},
		cache:     &MockCacheRepository{},
		scenarios: &MockScenarioRepository{},
	}
	f.uc = usecase.NewNarrativeUseCase(f.client, f.cache, f.scenarios, newSeriesUseCase(t),
		testCatalog(t), cacheTTL, nil, zap.NewNop())
	return f
}

func TestFormatDataTable(t *testing.T) {
	points := []domain.DataPoint{
		{Date: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), Value: 622},
		{Date: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC), Value: 5.5},
	}

	want := "      Date      Value\n" +
		"2026-10-03 622.000000\n" +
		"2026-10-10   5.500000"
	assert.Equal(t, want, usecase.FormatDataTable(points))
}

func TestNarrativeUseCase_BuildIndicatorsPrompt(t *testing.T) {
	f := newNarrativeFixture(t)

	prompt, err := f.uc.BuildIndicatorsPrompt(context.Background(), []string{"Rising", domain.GeoIndicatorName}, "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "Analyzing the following indicators:\n\nRising:\n"))
	assert.True(t, strings.HasSuffix(prompt, "Please provide a comprehensive interpretation of the trends and implications based on the above indicators."))
	assert.NotContains(t, prompt, domain.GeoIndicatorName)

	// последние 12 недель, не больше
	assert.Contains(t, prompt, "2026-07-25 612.000000")
	assert.Contains(t, prompt, "2026-10-10 623.000000")
	assert.NotContains(t, prompt, "2026-07-18")

	_, err = f.uc.BuildIndicatorsPrompt(context.Background(), []string{domain.ReservistIndicatorName}, "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
}

func TestNarrativeUseCase_InterpretIndicators(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the model", func(t *testing.T) {
		f := newNarrativeFixture(t)
		f.cache.On("GetInterpretation", ctx, mock.Anything).Return("cached text", true, nil)

		interp, err := f.uc.InterpretIndicators(ctx, []string{"Flat"}, "")
		require.NoError(t, err)
		assert.True(t, interp.Cached)
		assert.Equal(t, "cached text", interp.Text)
		f.client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("cache miss calls the model and caches", func(t *testing.T) {
		f := newNarrativeFixture(t)
		prompt, err := f.uc.BuildIndicatorsPrompt(ctx, []string{"Flat"}, "")
		require.NoError(t, err)
		hash := usecase.PromptHash(prompt)

		f.cache.On("GetInterpretation", ctx, hash).Return("", false, nil)
		f.client.On("Complete", ctx, prompt).Return("Flat is flat.", nil)
		f.cache.On("SetInterpretation", ctx, hash, "Flat is flat.", cacheTTL).Return(nil)

		interp, err := f.uc.InterpretIndicators(ctx, []string{"Flat"}, "")
		require.NoError(t, err)
		assert.False(t, interp.Cached)
		assert.Equal(t, "Flat is flat.", interp.Text)
		assert.Equal(t, prompt, interp.Prompt)

		f.cache.AssertExpectations(t)
		f.client.AssertExpectations(t)
	})

	t.Run("cache errors are not fatal", func(t *testing.T) {
		f := newNarrativeFixture(t)
		f.cache.On("GetInterpretation", ctx, mock.Anything).Return("", false, errors.New("redis down"))
		f.client.On("Complete", ctx, mock.Anything).Return("ok", nil)
		f.cache.On("SetInterpretation", ctx, mock.Anything, "ok", cacheTTL).Return(errors.New("redis down"))

		interp, err := f.uc.InterpretIndicators(ctx, []string{"Flat"}, "")
		require.NoError(t, err)
		assert.Equal(t, "ok", interp.Text)
	})

	t.Run("model failure", func(t *testing.T) {
		f := newNarrativeFixture(t)
		f.cache.On("GetInterpretation", ctx, mock.Anything).Return("", false, nil)
		f.client.On("Complete", ctx, mock.Anything).Return("", errors.New("timeout"))

		_, err := f.uc.InterpretIndicators(ctx, []string{"Flat"}, "")
		assert.True(t, errors.Is(err, apperrors.ErrNarrativeUnavailable))
		f.cache.AssertNotCalled(t, "SetInterpretation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNarrativeUseCase_InterpretChallenge(t *testing.T) {
	ctx := context.Background()
	scenario := &domain.Scenario{
		Name:       "Housing",
		Challenges: map[string][]string{"Labor": {"Flat", domain.ReservistIndicatorName}},
	}

	t.Run("success", func(t *testing.T) {
		f := newNarrativeFixture(t)
		f.scenarios.On("GetByName", ctx, "Housing").Return(scenario, nil)
		f.cache.On("GetInterpretation", ctx, mock.Anything).Return("", false, nil)
		f.client.On("Complete", ctx, mock.MatchedBy(func(p string) bool {
			return strings.HasPrefix(p, "Challenge: Labor\n\nHere is the data for the indicator 'Flat' over time:\n") &&
				!strings.Contains(p, domain.ReservistIndicatorName) &&
				strings.HasSuffix(p, "comprehensive interpretation of the situation for this challenge.")
		})).Return("Labor is tight.", nil)
		f.cache.On("SetInterpretation", ctx, mock.Anything, "Labor is tight.", cacheTTL).Return(nil)

		interp, err := f.uc.InterpretChallenge(ctx, "Housing", "Labor", "")
		require.NoError(t, err)
		assert.Equal(t, "Labor is tight.", interp.Text)
		f.client.AssertExpectations(t)
	})

	t.Run("scenario not found", func(t *testing.T) {
		f := newNarrativeFixture(t)
		f.scenarios.On("GetByName", ctx, "Nope").Return(nil, nil)

		_, err := f.uc.InterpretChallenge(ctx, "Nope", "Labor", "")
		assert.True(t, errors.Is(err, apperrors.ErrScenarioNotFound))
	})

	t.Run("challenge not found", func(t *testing.T) {
		f := newNarrativeFixture(t)
		f.scenarios.On("GetByName", ctx, "Housing").Return(scenario, nil)

		_, err := f.uc.InterpretChallenge(ctx, "Housing", "Energy", "")
		assert.True(t, errors.Is(err, apperrors.ErrChallengeNotFound))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newNarrativeFixture(t)
		f.scenarios.On("GetByName", ctx, "Housing").Return(nil, errors.New("conn refused"))

		_, err := f.uc.InterpretChallenge(ctx, "Housing", "Labor", "")
		assert.True(t, errors.Is(err, apperrors.ErrDatabaseError))
	})
}

func TestNarrativeUseCase_SelectIndicators(t *testing.T) {
	ctx := context.Background()
	f := newNarrativeFixture(t)

	reply := "- Interest Rates\n- Map of Construction Sites\n• Rising\n- Unknown"
	f.cache.On("GetInterpretation", ctx, mock.Anything).Return("", false, nil)
	f.client.On("Complete", ctx, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "Based on the following instruction: 'labor shortage',") &&
			strings.Contains(p, "Options: Rising, Map of Construction Sites, Flat") &&
			strings.HasSuffix(p, "Selected indicators:")
	})).Return(reply, nil)
	f.cache.On("SetInterpretation", ctx, mock.Anything, reply, cacheTTL).Return(nil)

	sel, err := f.uc.SelectIndicators(ctx, "labor shortage")
	require.NoError(t, err)
	assert.Equal(t, []string{"Interest Rates", "Rising"}, sel.Indicators)
	assert.Equal(t, reply, sel.Rationale)
}

func TestParseIndicatorSelection(t *testing.T) {
	known := []string{"GDP", "Level of wages", domain.GeoIndicatorName, domain.ReservistIndicatorName}

	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"comma list case-insensitive", "gdp, LEVEL OF WAGES", []string{"GDP", "Level of wages"}},
		{"dash bullets exact", "- GDP\n- level of wages", []string{"GDP"}},
		{"dot bullets", "• Level of wages", []string{"Level of wages"}},
		{"special indicators dropped", "- Map of Construction Sites\n- Percentage of Reservists per Industry", []string{}},
		{"duplicates removed", "GDP\n- GDP", []string{"GDP"}},
		{"nothing recognised", "I would look at housing.", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.ParseIndicatorSelection(tt.reply, known))
		})
	}
}
