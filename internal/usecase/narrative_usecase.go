package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/catalog"
	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/domain/repository"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/pkg/metrics"
	"github.com/indicator-dashboard/internal/workforce"
)

const (
	// PromptTailWeeks - сколько последних недель каждого индикатора попадает в промпт
	PromptTailWeeks = 12

	indicatorsPromptHeader = "Analyzing the following indicators:\n\n"
	indicatorsPromptFooter = "Please provide a comprehensive interpretation of the trends and implications based on the above indicators."
	challengePromptFooter  = "Based on the trends in this data for all indicators, please provide a comprehensive interpretation of the situation for this challenge."
)

// Индикаторы без осмысленного временного ряда в промпт не попадают
var excludedFromNarrative = map[string]struct{}{
	domain.GeoIndicatorName:       {},
	domain.ReservistIndicatorName: {},
}

// NarrativeUseCase строит промпты по сгенерированным рядам и получает
// интерпретации от языковой модели
type NarrativeUseCase struct {
	client    repository.NarrativeClient
	cacheRepo repository.CacheRepository
	scenarios repository.ScenarioRepository
	series    *SeriesUseCase
	catalog   *catalog.Catalog
	cacheTTL  time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewNarrativeUseCase создает новый экземпляр NarrativeUseCase
func NewNarrativeUseCase(
	client repository.NarrativeClient,
	cacheRepo repository.CacheRepository,
	scenarios repository.ScenarioRepository,
	seriesUC *SeriesUseCase,
	cat *catalog.Catalog,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *NarrativeUseCase {
	return &NarrativeUseCase{
		client:    client,
		cacheRepo: cacheRepo,
		scenarios: scenarios,
		series:    seriesUC,
		catalog:   cat,
		cacheTTL:  cacheTTL,
		metrics:   m,
		logger:    logger,
	}
}

// InterpretIndicators интерпретирует последние недели набора индикаторов
func (uc *NarrativeUseCase) InterpretIndicators(ctx context.Context, indicators []string, selection string) (*domain.Interpretation, error) {
	prompt, err := uc.BuildIndicatorsPrompt(ctx, indicators, selection)
	if err != nil {
		return nil, err
	}
	return uc.interpret(ctx, prompt)
}

// InterpretChallenge интерпретирует индикаторы вызова сохранённого сценария
func (uc *NarrativeUseCase) InterpretChallenge(ctx context.Context, scenarioName, challenge, selection string) (*domain.Interpretation, error) {
	sc, err := uc.scenarios.GetByName(ctx, scenarioName)
	if err != nil {
		uc.logger.Error("Failed to load scenario", zap.String("scenario", scenarioName), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if sc == nil {
		return nil, apperrors.ErrScenarioNotFound.WithDetails(map[string]interface{}{"scenario": scenarioName})
	}

	indicators, ok := sc.ChallengeIndicators(challenge)
	if !ok {
		return nil, apperrors.ErrChallengeNotFound.WithDetails(map[string]interface{}{
			"scenario":  scenarioName,
			"challenge": challenge,
		})
	}

	prompt, err := uc.BuildChallengePrompt(ctx, challenge, indicators, selection)
	if err != nil {
		return nil, err
	}
	return uc.interpret(ctx, prompt)
}

// SelectIndicators просит модель подобрать индикаторы каталога под инструкцию
func (uc *NarrativeUseCase) SelectIndicators(ctx context.Context, instruction string) (*domain.IndicatorSelection, error) {
	all := uc.catalog.AllIndicators()
	prompt := fmt.Sprintf(
		"Based on the following instruction: '%s', which of these indicators would be most relevant to focus on? "+
			"Please provide a list of indicators listed with '- ' prefix.\n\n"+
			"Options: %s\n\n"+
			"Selected indicators:",
		instruction, strings.Join(all, ", "))

	interp, err := uc.interpret(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &domain.IndicatorSelection{
		Indicators: ParseIndicatorSelection(interp.Text, all),
		Rationale:  interp.Text,
	}, nil
}

// AnalyzeReviews просит модель разобрать отзывы сотрудников по заданным темам
func (uc *NarrativeUseCase) AnalyzeReviews(ctx context.Context, reviews []workforce.Review, topics []string) (*domain.Interpretation, error) {
	prompt, err := BuildReviewsPrompt(reviews, topics)
	if err != nil {
		return nil, err
	}
	return uc.interpret(ctx, prompt)
}

// BuildReviewsPrompt строит промпт разбора отзывов: темы через запятую и текст плюсов и минусов
func BuildReviewsPrompt(reviews []workforce.Review, topics []string) (string, error) {
	if len(topics) == 0 {
		return "", apperrors.ErrInvalidRequest.WithMessage("at least one analysis topic is required")
	}
	corpus := workforce.ReviewCorpus(reviews)
	if corpus == "" {
		return "", apperrors.ErrInvalidRequest.WithMessage("reviews have no text to analyze")
	}
	return fmt.Sprintf(
		"Analyze these employee reviews and provide detailed insights on the following topics: %s: %s",
		strings.Join(topics, ", "), corpus), nil
}

// BuildIndicatorsPrompt строит промпт по набору индикаторов
func (uc *NarrativeUseCase) BuildIndicatorsPrompt(ctx context.Context, indicators []string, selection string) (string, error) {
	filtered := narrativeIndicators(indicators)
	if len(filtered) == 0 {
		return "", apperrors.ErrInvalidRequest.WithMessage("no indicators with time series to interpret")
	}

	var b strings.Builder
	b.WriteString(indicatorsPromptHeader)
	for _, name := range filtered {
		table, err := uc.tailTable(ctx, name, selection)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", name, table)
	}
	b.WriteString(indicatorsPromptFooter)

	return b.String(), nil
}

// BuildChallengePrompt строит промпт по вызову сценария
func (uc *NarrativeUseCase) BuildChallengePrompt(ctx context.Context, challenge string, indicators []string, selection string) (string, error) {
	filtered := narrativeIndicators(indicators)
	if len(filtered) == 0 {
		return "", apperrors.ErrInvalidRequest.WithMessage("challenge has no indicators with time series")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Challenge: %s\n\n", challenge)
	for _, name := range filtered {
		table, err := uc.tailTable(ctx, name, selection)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Here is the data for the indicator '%s' over time:\n%s\n\n", name, table)
	}
	b.WriteString(challengePromptFooter)

	return b.String(), nil
}

func (uc *NarrativeUseCase) tailTable(ctx context.Context, name, selection string) (string, error) {
	points, err := uc.series.GetTail(ctx, name, selection, PromptTailWeeks)
	if err != nil {
		return "", err
	}
	return FormatDataTable(points), nil
}

// interpret отдаёт ответ из кеша или запрашивает модель и кеширует результат
func (uc *NarrativeUseCase) interpret(ctx context.Context, prompt string) (*domain.Interpretation, error) {
	start := time.Now()
	hash := PromptHash(prompt)

	text, ok, err := uc.cacheRepo.GetInterpretation(ctx, hash)
	if err != nil {
		uc.logger.Warn("Failed to read interpretation cache", zap.Error(err))
	} else if ok {
		uc.metrics.ObserveNarrative("cached", time.Since(start))
		uc.logger.Debug("Interpretation served from cache", zap.String("hash", hash))
		return &domain.Interpretation{Prompt: prompt, Text: text, Cached: true}, nil
	}

	text, err = uc.client.Complete(ctx, prompt)
	if err != nil {
		uc.metrics.ObserveNarrative("error", time.Since(start))
		uc.logger.Warn("Narrative request failed", zap.Error(err))
		return nil, apperrors.ErrNarrativeUnavailable.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	if err := uc.cacheRepo.SetInterpretation(ctx, hash, text, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache interpretation", zap.Error(err))
	}

	uc.metrics.ObserveNarrative("ok", time.Since(start))
	uc.logger.Info("Interpretation received",
		zap.String("hash", hash),
		zap.Duration("took", time.Since(start)))

	return &domain.Interpretation{Prompt: prompt, Text: text}, nil
}

// PromptHash - ключ кеша интерпретаций
func PromptHash(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// FormatDataTable печатает точки таблицей Date / Value с выравниванием вправо
func FormatDataTable(points []domain.DataPoint) string {
	const dateLayout = "2006-01-02"

	values := make([]string, len(points))
	width := len("Value")
	for i, p := range points {
		values[i] = fmt.Sprintf("%.6f", p.Value)
		if len(values[i]) > width {
			width = len(values[i])
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s %*s", len(dateLayout), "Date", width, "Value")
	for i, p := range points {
		fmt.Fprintf(&b, "\n%s %*s", p.Date.Format(dateLayout), width, values[i])
	}
	return b.String()
}

// ParseIndicatorSelection извлекает индикаторы из ответа модели.
// Токены через запятую сравниваются без учёта регистра, строки-списки
// с "- " или "• " - точно. Специальные индикаторы и повторы отбрасываются.
func ParseIndicatorSelection(reply string, known []string) []string {
	byLower := make(map[string]string, len(known))
	exact := make(map[string]struct{}, len(known))
	for _, name := range known {
		byLower[strings.ToLower(name)] = name
		exact[name] = struct{}{}
	}

	var found []string
	for _, token := range strings.Split(reply, ",") {
		if name, ok := byLower[strings.ToLower(strings.TrimSpace(token))]; ok {
			found = append(found, name)
		}
	}

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range []string{"- ", "• "} {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			candidate := strings.TrimPrefix(line, prefix)
			if _, ok := exact[candidate]; ok {
				found = append(found, candidate)
			}
		}
	}

	return dedupe(narrativeIndicators(found))
}

func narrativeIndicators(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, skip := excludedFromNarrative[name]; skip {
			continue
		}
		out = append(out, name)
	}
	return out
}
