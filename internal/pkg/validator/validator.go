package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/indicator-dashboard/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// В деталях ошибок используем имена полей из json тегов
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate - валидация структуры; ошибки полей превращаются в INVALID_REQUEST с деталями
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]interface{}, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		return apperrors.ErrInvalidRequest.WithDetails(details)
	}

	return apperrors.ErrInvalidRequest.WithMessage(err.Error())
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
