package catalog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"fairweather/internal/types"
)

var validate = validator.New()

// Validate checks every definition's struct constraints (required id and
// name, seasonal months within 1..12) and rejects duplicate ids.
// Condition strings are not validated here; malformed ones are tolerated.
func Validate(defs []types.ActivityDefinition) error {
	seen := make(map[string]int, len(defs))
	for i := range defs {
		def := &defs[i]
		if err := validate.Struct(def); err != nil {
			return types.NewAppErrorWithDetails(
				types.ErrCodeValidationInvalidCatalog,
				fmt.Sprintf("activity at index %d is invalid", i),
				err,
				map[string]any{
					"index":  i,
					"id":     def.ID,
					"fields": fieldErrors(err),
				},
			)
		}
		if prev, dup := seen[def.ID]; dup {
			return types.NewAppErrorWithDetails(
				types.ErrCodeValidationInvalidCatalog,
				fmt.Sprintf("duplicate activity id %q", def.ID),
				nil,
				map[string]any{"id": def.ID, "first_index": prev, "index": i},
			)
		}
		seen[def.ID] = i
	}
	return nil
}

func fieldErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s:%s", fe.Namespace(), fe.Tag()))
	}
	return out
}
