package core

import (
	"errors"
	"testing"

	"fairweather/internal/types"
)

type validatedRequest struct {
	Interests []string `json:"interests" validate:"required,min=1,dive,required"`
	Timezone  string   `json:"timezone" validate:"omitempty,timezone"`
	Days      []struct {
		Date string `json:"date" validate:"required"`
	} `json:"days" validate:"required,dive"`
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	good := validatedRequest{Interests: []string{"running"}, Timezone: "Europe/Oslo"}
	good.Days = append(good.Days, struct {
		Date string `json:"date" validate:"required"`
	}{Date: "2026-10-18"})
	if err := v.Struct(good); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := validatedRequest{Timezone: "Mars/Olympus"}
	bad.Days = append(bad.Days, struct {
		Date string `json:"date" validate:"required"`
	}{})
	err := v.Struct(bad)

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("want AppError, got %v", err)
	}
	if appErr.Code != types.ErrCodeValidationInvalidRequest {
		t.Errorf("code = %q", appErr.Code)
	}
	fields, _ := appErr.Details["fields"].(map[string]any)
	for _, name := range []string{"interests", "timezone", "days[0].date"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("missing field %q in %v", name, fields)
		}
	}
}
