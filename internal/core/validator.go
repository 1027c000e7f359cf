package core

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fairweather/internal/types"
)

// Validator wraps go-playground/validator and reports failures as
// validation AppErrors keyed by JSON field name.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a Validator that names fields by their json tag.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s. The returned error is nil or a
// validation_invalid_request AppError with per-field details.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return types.NewAppError(types.ErrCodeValidationInvalidRequest, "invalid request", err)
	}

	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[path] = rule
	}
	return types.NewAppErrorWithDetails(types.ErrCodeValidationInvalidRequest,
		"request failed validation", err, map[string]any{"fields": fields})
}
