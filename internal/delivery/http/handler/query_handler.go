package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/pkg/utils"
	"github.com/indicator-dashboard/internal/pkg/validator"
	"github.com/indicator-dashboard/internal/usecase"
	"github.com/indicator-dashboard/internal/usecase/dto"
)

// QueryHandler - сохранённые запросы генеративного режима
type QueryHandler struct {
	queryUC *usecase.QueryUseCase
	logger  *zap.Logger
}

func NewQueryHandler(queryUC *usecase.QueryUseCase, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{queryUC: queryUC, logger: logger}
}

// List godoc
// @Summary List saved queries
// @Tags Queries
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.SavedQuery}
// @Router /api/v1/queries [get]
func (h *QueryHandler) List(c *fiber.Ctx) error {
	list, err := h.queryUC.List(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, list, &utils.Meta{Total: len(list)})
}

// Save godoc
// @Summary Save a query
// @Tags Queries
// @Accept json
// @Produce json
// @Param request body dto.SaveQueryRequest true "Query"
// @Success 200 {object} utils.SuccessResponse{data=domain.SavedQuery}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/queries [post]
func (h *QueryHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	q, err := h.queryUC.Save(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, q, nil)
}

// Get godoc
// @Summary Get a saved query
// @Tags Queries
// @Produce json
// @Param name path string true "Query name"
// @Success 200 {object} utils.SuccessResponse{data=domain.SavedQuery}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/queries/{name} [get]
func (h *QueryHandler) Get(c *fiber.Ctx) error {
	q, err := h.queryUC.Get(c.UserContext(), c.Params("name"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, q, nil)
}

// Delete godoc
// @Summary Delete a saved query
// @Tags Queries
// @Param name path string true "Query name"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/queries/{name} [delete]
func (h *QueryHandler) Delete(c *fiber.Ctx) error {
	if err := h.queryUC.Delete(c.UserContext(), c.Params("name")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
