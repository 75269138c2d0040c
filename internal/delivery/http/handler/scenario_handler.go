package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/pkg/utils"
	"github.com/indicator-dashboard/internal/pkg/validator"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

// ScenarioHandler - сценарии анализа
type ScenarioHandler struct {
	scenarioUC *usecase.ScenarioUseCase
	logger     *zap.Logger
}

func NewScenarioHandler(scenarioUC *usecase.ScenarioUseCase, logger *zap.Logger) *ScenarioHandler {
	return &ScenarioHandler{scenarioUC: scenarioUC, logger: logger}
}

// List godoc
// @Summary List scenarios
// @Tags Scenarios
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Scenario}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/scenarios [get]
func (h *ScenarioHandler) List(c *fiber.Ctx) error {
	list, err := h.scenarioUC.List(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, list, &utils.Meta{Total: len(list)})
}

// Save godoc
// @Summary Create or replace a scenario
// @Tags Scenarios
// @Accept json
// @Produce json
// @Param request body dto.SaveScenarioRequest true "Scenario"
// @Success 200 {object} utils.SuccessResponse{data=domain.Scenario}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/scenarios [post]
func (h *ScenarioHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	sc, err := h.scenarioUC.Save(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, sc, nil)
}

// Get godoc
// @Summary Get a scenario
// @Tags Scenarios
// @Produce json
// @Param name path string true "Scenario name"
// @Success 200 {object} utils.SuccessResponse{data=domain.Scenario}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/scenarios/{name} [get]
func (h *ScenarioHandler) Get(c *fiber.Ctx) error {
	sc, err := h.scenarioUC.Get(c.UserContext(), c.Params("name"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, sc, nil)
}

// Delete godoc
// @Summary Delete a scenario
// @Tags Scenarios
// @Param name path string true "Scenario name"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/scenarios/{name} [delete]
func (h *ScenarioHandler) Delete(c *fiber.Ctx) error {
	if err := h.scenarioUC.Delete(c.UserContext(), c.Params("name")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
