package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/pkg/utils"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

// IndicatorHandler - обработчик запросов рядов индикаторов
type IndicatorHandler struct {
	seriesUC    *usecase.SeriesUseCase
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

// NewIndicatorHandler - создание нового IndicatorHandler
func NewIndicatorHandler(seriesUC *usecase.SeriesUseCase, dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *IndicatorHandler {
	return &IndicatorHandler{
		seriesUC:    seriesUC,
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// List godoc
// @Summary List indicators
// @Description Все индикаторы каталога с типом графика
// @Tags Indicators
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.IndicatorDescriptor}
// @Router /api/v1/indicators [get]
func (h *IndicatorHandler) List(c *fiber.Ctx) error {
	indicators := h.dashboardUC.Indicators(c.UserContext())
	return utils.SendSuccess(c, indicators, &utils.Meta{Total: len(indicators)})
}

// GetSeries godoc
// @Summary Generate indicator series
// @Description Недельный ряд индикатора либо гео-точки для карты строек.
// @Description Одинаковый selection даёт одинаковый ряд.
// @Tags Indicators
// @Produce json
// @Param name path string true "Indicator name"
// @Param selection query string false "Dashboard selection (industry or startup)"
// @Success 200 {object} utils.SuccessResponse{data=domain.SeriesResult}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/indicators/{name}/series [get]
func (h *IndicatorHandler) GetSeries(c *fiber.Ctx) error {
	selection := c.Query("selection")

	res, err := h.seriesUC.GetSeries(c.UserContext(), indicatorName(c), selection)
	if err != nil {
		return utils.SendError(c, err)
	}

	total := len(res.Points)
	if !res.IsGeo() {
		total = res.Series.Len()
	}
	return utils.SendSuccess(c, res, selectionMeta(selection, total))
}

// GetChart godoc
// @Summary Chart data
// @Description Данные графика: тип, цвет по порогу и последние 24 недели (или весь ряд при detailed=true)
// @Tags Indicators
// @Produce json
// @Param name path string true "Indicator name"
// @Param selection query string false "Dashboard selection"
// @Param detailed query bool false "Return the whole series"
// @Param threshold query number false "Color the chart red when the last value is below"
// @Success 200 {object} utils.SuccessResponse{data=dto.ChartResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/indicators/{name}/chart [get]
func (h *IndicatorHandler) GetChart(c *fiber.Ctx) error {
	threshold, err := queryFloat(c, "threshold")
	if err != nil {
		return utils.SendError(c, err)
	}

	req := dto.ChartRequest{
		Indicator: indicatorName(c),
		Selection: c.Query("selection"),
		Detailed:  c.QueryBool("detailed", false),
		Threshold: threshold,
	}

	chart, err := h.seriesUC.GetChart(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, chart, selectionMeta(req.Selection, len(chart.Points)))
}

// GetDeviation godoc
// @Summary Deviation of recent weeks
// @Description Отклонение среднего за последние недели от среднего за год
// @Tags Indicators
// @Produce json
// @Param name path string true "Indicator name"
// @Param selection query string false "Dashboard selection"
// @Success 200 {object} utils.SuccessResponse{data=domain.Deviation}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/indicators/{name}/deviation [get]
func (h *IndicatorHandler) GetDeviation(c *fiber.Ctx) error {
	selection := c.Query("selection")

	d, err := h.seriesUC.GetDeviation(c.UserContext(), indicatorName(c), selection)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, d, selectionMeta(selection, 0))
}

// GetTail godoc
// @Summary Last points of a series
// @Tags Indicators
// @Produce json
// @Param name path string true "Indicator name"
// @Param selection query string false "Dashboard selection"
// @Param n query int false "Number of points" default(12)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.DataPoint}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/indicators/{name}/tail [get]
func (h *IndicatorHandler) GetTail(c *fiber.Ctx) error {
	n, err := queryInt(c, "n", usecase.PromptTailWeeks)
	if err != nil {
		return utils.SendError(c, err)
	}
	selection := c.Query("selection")

	points, err := h.seriesUC.GetTail(c.UserContext(), indicatorName(c), selection, n)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, points, selectionMeta(selection, len(points)))
}
