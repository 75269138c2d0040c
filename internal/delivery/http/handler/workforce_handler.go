package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/pkg/utils"
	"github.com/indicator-dashboard/internal/pkg/validator"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

// WorkforceHandler - кадровая аналитика
type WorkforceHandler struct {
	workforceUC *usecase.WorkforceUseCase
	narrativeUC *usecase.NarrativeUseCase
	logger      *zap.Logger
}

func NewWorkforceHandler(workforceUC *usecase.WorkforceUseCase, narrativeUC *usecase.NarrativeUseCase, logger *zap.Logger) *WorkforceHandler {
	return &WorkforceHandler{
		workforceUC: workforceUC,
		narrativeUC: narrativeUC,
		logger:      logger,
	}
}

// Attrition godoc
// @Summary Yearly attrition
// @Description Текучесть по годам: уволенные в году / нанятые не позже этого года.
// @Description Необязательный benchmark считается так же для сравнения.
// @Tags Workforce
// @Accept json
// @Produce json
// @Param request body dto.AttritionRequest true "Employment records"
// @Success 200 {object} utils.SuccessResponse{data=dto.AttritionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/workforce/attrition [post]
func (h *WorkforceHandler) Attrition(c *fiber.Ctx) error {
	var req dto.AttritionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.workforceUC.Attrition(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: len(resp.Company)})
}

// ReviewStats godoc
// @Summary Employee review statistics
// @Tags Workforce
// @Accept json
// @Produce json
// @Param request body dto.ReviewStatsRequest true "Reviews"
// @Success 200 {object} utils.SuccessResponse{data=workforce.ReviewStats}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/workforce/reviews/stats [post]
func (h *WorkforceHandler) ReviewStats(c *fiber.Ctx) error {
	var req dto.ReviewStatsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	stats, err := h.workforceUC.ReviewStats(c.UserContext(), req.Reviews)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, &utils.Meta{Total: stats.Count})
}

// AnalyzeReviews godoc
// @Summary Analyze employee reviews
// @Description Языковая модель разбирает плюсы и минусы из отзывов по заданным темам
// @Tags Workforce
// @Accept json
// @Produce json
// @Param request body dto.ReviewAnalysisRequest true "Reviews and topics"
// @Success 200 {object} utils.SuccessResponse{data=domain.Interpretation}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/workforce/reviews/analysis [post]
func (h *WorkforceHandler) AnalyzeReviews(c *fiber.Ctx) error {
	var req dto.ReviewAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	interp, err := h.narrativeUC.AnalyzeReviews(c.UserContext(), req.Reviews, req.Topics)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, interp, &utils.Meta{Total: len(req.Reviews)})
}
