package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *apperrors.AppError `json:"error"`
}

type Meta struct {
	Total     int    `json:"total,omitempty"`
	Selection string `json:"selection,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: apperrors.ErrInternalServer,
	})
}
