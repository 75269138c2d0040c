package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
)

type sample struct {
	Name       string   `json:"name" validate:"required"`
	Indicators []string `json:"indicators" validate:"required,min=1"`
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(&sample{Name: "x", Indicators: []string{"GDP"}}))

	err := Validate(&sample{})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_REQUEST", appErr.Code)
	assert.Equal(t, "required", appErr.Details["name"])
	assert.Contains(t, appErr.Details, "indicators")

	// каталожная ошибка не изменилась
	assert.Empty(t, apperrors.ErrInvalidRequest.Details)
}
