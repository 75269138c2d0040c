package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/pkg/utils"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

// DashboardHandler - отрасли, резервисты и оценки стартапов
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	startupUC   *usecase.StartupUseCase
	logger      *zap.Logger
}

func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase, startupUC *usecase.StartupUseCase, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		startupUC:   startupUC,
		logger:      logger,
	}
}

// Industries godoc
// @Summary List industries
// @Description Отрасли с группами индикаторов по умолчанию
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Industry}
// @Router /api/v1/industries [get]
func (h *DashboardHandler) Industries(c *fiber.Ctx) error {
	industries := h.dashboardUC.Industries(c.UserContext())
	return utils.SendSuccess(c, industries, &utils.Meta{Total: len(industries)})
}

// IndustryIndicators godoc
// @Summary Indicators of an industry
// @Description Индикаторы отрасли по умолчанию плюс дополнительные и общие
// @Tags Dashboard
// @Produce json
// @Param industry path string true "Industry name"
// @Param extra query string false "Comma separated extra indicators"
// @Param shared query string false "Comma separated shared indicators"
// @Success 200 {object} utils.SuccessResponse{data=dto.IndustryIndicatorsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/industries/{industry}/indicators [get]
func (h *DashboardHandler) IndustryIndicators(c *fiber.Ctx) error {
	req := dto.IndustryIndicatorsRequest{
		Industry: c.Params("industry"),
		Extra:    queryList(c, "extra"),
		Shared:   queryList(c, "shared"),
	}

	resp, err := h.dashboardUC.IndustryIndicators(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, selectionMeta(req.Industry, len(resp.Indicators)))
}

// Reservists godoc
// @Summary Reservists per industry
// @Description Доли резервистов по отраслям для круговой диаграммы
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ReservistsResponse}
// @Router /api/v1/reservists [get]
func (h *DashboardHandler) Reservists(c *fiber.Ctx) error {
	resp := h.dashboardUC.Reservists(c.UserContext())
	return utils.SendSuccess(c, resp, &utils.Meta{Total: len(resp.Shares)})
}

// StartupScores godoc
// @Summary Startup scores
// @Description Случайные оценки стартапов по направлениям и гистограмма общего балла
// @Tags Dashboard
// @Produce json
// @Param count query int false "Number of startups" default(100)
// @Param selection query string false "Seed selection"
// @Success 200 {object} utils.SuccessResponse{data=dto.StartupScoresResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/startups/scores [get]
func (h *DashboardHandler) StartupScores(c *fiber.Ctx) error {
	count, err := queryInt(c, "count", usecase.DefaultStartupCount)
	if err != nil {
		return utils.SendError(c, err)
	}
	selection := c.Query("selection")

	resp, err := h.startupUC.Scores(c.UserContext(), count, selection)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, selectionMeta(selection, len(resp.Scores)))
}
