package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/pkg/utils"
	"github.com/indicator-dashboard/internal/pkg/validator"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

// challengeBody - необязательное тело запроса интерпретации вызова
type challengeBody struct {
	Selection string `json:"selection,omitempty" validate:"max=200"`
}

// NarrativeHandler - генеративный режим: интерпретации и подбор индикаторов
type NarrativeHandler struct {
	narrativeUC *usecase.NarrativeUseCase
	jobUC       *usecase.NarrativeJobUseCase
	logger      *zap.Logger
}

// NewNarrativeHandler создает новый экземпляр NarrativeHandler
func NewNarrativeHandler(narrativeUC *usecase.NarrativeUseCase, jobUC *usecase.NarrativeJobUseCase, logger *zap.Logger) *NarrativeHandler {
	return &NarrativeHandler{
		narrativeUC: narrativeUC,
		jobUC:       jobUC,
		logger:      logger,
	}
}

// InterpretIndicators godoc
// @Summary Interpret indicators
// @Description Интерпретация последних 12 недель выбранных индикаторов языковой моделью
// @Tags Narrative
// @Accept json
// @Produce json
// @Param request body dto.InterpretIndicatorsRequest true "Indicators"
// @Success 200 {object} utils.SuccessResponse{data=domain.Interpretation}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/narrative/indicators [post]
func (h *NarrativeHandler) InterpretIndicators(c *fiber.Ctx) error {
	var req dto.InterpretIndicatorsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	interp, err := h.narrativeUC.InterpretIndicators(c.UserContext(), req.Indicators, req.Selection)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, interp, selectionMeta(req.Selection, len(req.Indicators)))
}

// SelectIndicators godoc
// @Summary Select indicators by instruction
// @Description Языковая модель подбирает индикаторы каталога под инструкцию пользователя
// @Tags Narrative
// @Accept json
// @Produce json
// @Param request body dto.SelectIndicatorsRequest true "Instruction"
// @Success 200 {object} utils.SuccessResponse{data=domain.IndicatorSelection}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/narrative/select [post]
func (h *NarrativeHandler) SelectIndicators(c *fiber.Ctx) error {
	var req dto.SelectIndicatorsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	sel, err := h.narrativeUC.SelectIndicators(c.UserContext(), req.Instruction)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, sel, &utils.Meta{Total: len(sel.Indicators)})
}

// InterpretChallenge godoc
// @Summary Interpret a scenario challenge
// @Tags Narrative
// @Accept json
// @Produce json
// @Param name path string true "Scenario name"
// @Param challenge path string true "Challenge name"
// @Param request body challengeBody false "Selection"
// @Success 200 {object} utils.SuccessResponse{data=domain.Interpretation}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/narrative/scenarios/{name}/challenges/{challenge} [post]
func (h *NarrativeHandler) InterpretChallenge(c *fiber.Ctx) error {
	var body challengeBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return utils.SendError(c, invalidBody())
		}
		if err := validator.Validate(&body); err != nil {
			return utils.SendError(c, err)
		}
	}

	interp, err := h.narrativeUC.InterpretChallenge(c.UserContext(), c.Params("name"), c.Params("challenge"), body.Selection)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, interp, selectionMeta(body.Selection, 0))
}

// CreateJob godoc
// @Summary Queue a narrative job
// @Description Ставит интерпретацию в очередь Redis Stream; результат доступен по job_id
// @Tags Narrative
// @Accept json
// @Produce json
// @Param request body dto.CreateNarrativeJobRequest true "Job"
// @Success 202 {object} utils.SuccessResponse{data=dto.NarrativeJobCreatedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/narrative/jobs [post]
func (h *NarrativeHandler) CreateJob(c *fiber.Ctx) error {
	var req dto.CreateNarrativeJobRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.jobUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, resp, nil)
}

// GetJob godoc
// @Summary Narrative job status
// @Tags Narrative
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=domain.NarrativeJob}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/narrative/jobs/{id} [get]
func (h *NarrativeHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.jobUC.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, job, nil)
}
