package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/catalog"
	"github.com/indicator-dashboard/internal/domain"
	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

// DashboardUseCase отдаёт структуру дашборда из каталога
type DashboardUseCase struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewDashboardUseCase создает новый экземпляр DashboardUseCase
func NewDashboardUseCase(cat *catalog.Catalog, logger *zap.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		catalog: cat,
		logger:  logger,
	}
}

func (uc *DashboardUseCase) Industries(ctx context.Context) []domain.Industry {
	return uc.catalog.Industries
}

// Indicators возвращает все индикаторы каталога с типом графика
func (uc *DashboardUseCase) Indicators(ctx context.Context) []dto.IndicatorDescriptor {
	return uc.describe(uc.catalog.AllIndicators())
}

// IndustryIndicators собирает индикаторы отрасли: группы по умолчанию,
// затем выбранные дополнительные и общие, без повторов
func (uc *DashboardUseCase) IndustryIndicators(ctx context.Context, req dto.IndustryIndicatorsRequest) (*dto.IndustryIndicatorsResponse, error) {
	if _, ok := uc.catalog.Industry(req.Industry); !ok {
		return nil, apperrors.ErrIndustryNotFound.WithDetails(map[string]interface{}{
			"industry": req.Industry,
		})
	}

	known := make(map[string]struct{})
	for _, name := range uc.catalog.AllIndicators() {
		known[name] = struct{}{}
	}
	shared := make(map[string]struct{}, len(uc.catalog.SharedIndicators))
	for _, name := range uc.catalog.SharedIndicators {
		shared[name] = struct{}{}
	}

	var unknown []string
	for _, name := range req.Extra {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	for _, name := range req.Shared {
		if _, ok := shared[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"unknown_indicators": strings.Join(unknown, ", "),
		})
	}

	names := dedupe(uc.catalog.DefaultIndicators(req.Industry), req.Extra, req.Shared)

	uc.logger.Debug("Industry indicators resolved",
		zap.String("industry", req.Industry),
		zap.Int("count", len(names)))

	return &dto.IndustryIndicatorsResponse{
		Industry:   req.Industry,
		Indicators: uc.describe(names),
	}, nil
}

// Reservists возвращает распределение резервистов по отраслям
func (uc *DashboardUseCase) Reservists(ctx context.Context) *dto.ReservistsResponse {
	return &dto.ReservistsResponse{
		Indicator: domain.ReservistIndicatorName,
		Shares:    uc.catalog.ReservistDistribution(),
	}
}

func (uc *DashboardUseCase) describe(names []string) []dto.IndicatorDescriptor {
	out := make([]dto.IndicatorDescriptor, 0, len(names))
	for _, name := range names {
		out = append(out, dto.IndicatorDescriptor{Name: name, PlotType: uc.catalog.PlotType(name)})
	}
	return out
}

// dedupe склеивает списки, сохраняя первое вхождение
func dedupe(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
