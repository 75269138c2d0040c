package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/usecase/dto"
	"github.com/indicator-dashboard/internal/workforce"
)

// WorkforceUseCase - кадровая аналитика: текучесть и отзывы сотрудников
type WorkforceUseCase struct {
	logger *zap.Logger
}

func NewWorkforceUseCase(logger *zap.Logger) *WorkforceUseCase {
	return &WorkforceUseCase{logger: logger}
}

// Attrition считает годовую текучесть компании и бенчмарка для сравнения
func (uc *WorkforceUseCase) Attrition(ctx context.Context, req dto.AttritionRequest) (*dto.AttritionResponse, error) {
	if len(req.Company) == 0 {
		return nil, apperrors.ErrInvalidRequest.WithMessage("company records are required")
	}
	if err := validateRecords("company", req.Company); err != nil {
		return nil, err
	}
	if err := validateRecords("benchmark", req.Benchmark); err != nil {
		return nil, err
	}

	resp := &dto.AttritionResponse{Company: workforce.Attrition(req.Company)}
	if len(req.Benchmark) > 0 {
		resp.Benchmark = workforce.Attrition(req.Benchmark)
	}

	uc.logger.Debug("Attrition computed",
		zap.Int("company_records", len(req.Company)),
		zap.Int("benchmark_records", len(req.Benchmark)),
		zap.Int("years", len(resp.Company)))

	return resp, nil
}

// ReviewStats возвращает сводку по отзывам сотрудников
func (uc *WorkforceUseCase) ReviewStats(ctx context.Context, reviews []workforce.Review) (*workforce.ReviewStats, error) {
	stats, err := workforce.SummarizeReviews(reviews)
	if err != nil {
		if errors.Is(err, workforce.ErrNoReviews) || errors.Is(err, workforce.ErrInvalidRating) {
			return nil, apperrors.ErrInvalidRequest.WithMessage(err.Error())
		}
		return nil, fmt.Errorf("summarize reviews: %w", err)
	}
	return stats, nil
}

func validateRecords(field string, records []workforce.EmploymentRecord) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				fmt.Sprintf("%s[%d]", field, i): err.Error(),
			})
		}
	}
	return nil
}
