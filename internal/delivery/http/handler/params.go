package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
	"github.com/indicator-dashboard/internal/pkg/utils"
)

// indicatorName - имя индикатора из greedy-параметра /indicators/+/...,
// может содержать "/"
func indicatorName(c *fiber.Ctx) string {
	return c.Params("+")
}

// queryInt читает целый query-параметр; пустое значение - def
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: "must be an integer"})
	}
	return v, nil
}

// queryFloat читает необязательный float query-параметр
func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: "must be a number"})
	}
	return &v, nil
}

// queryList разбирает список через запятую, пустые элементы отбрасываются
func queryList(c *fiber.Ctx, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// selectionMeta - meta ответа для данных, зависящих от выбора
func selectionMeta(selection string, total int) *utils.Meta {
	meta := &utils.Meta{Total: total, Selection: selection}
	if selection != "" {
		meta.Seed = utils.SelectionSeed(selection)
	}
	return meta
}

func invalidBody() error {
	return apperrors.ErrInvalidRequest.WithMessage("Invalid request body")
}
