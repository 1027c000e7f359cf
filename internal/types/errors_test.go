package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorErrorFormat(t *testing.T) {
	appErr := &AppError{
		Code:    ErrCodeValidationInvalidDate,
		Message: "date must be YYYY-MM-DD",
	}

	expected := "validation_invalid_date: date must be YYYY-MM-DD"
	if appErr.Error() != expected {
		t.Errorf("Error() = %q, want %q", appErr.Error(), expected)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	underlying := errors.New("connection reset")
	appErr := NewAppError(ErrCodeInternalDB, "failed to load activities", underlying)

	if !errors.Is(appErr, underlying) {
		t.Errorf("errors.Is should find the wrapped error")
	}

	wrapped := fmt.Errorf("catalog: %w", appErr)
	var target *AppError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should extract *AppError from the chain")
	}
	if target.Code != ErrCodeInternalDB {
		t.Errorf("Code = %q, want %q", target.Code, ErrCodeInternalDB)
	}
}

func TestErrorCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationInvalidJSON, http.StatusBadRequest},
		{ErrCodeValidationTooManyDays, http.StatusBadRequest},
		{ErrCodeNotFoundActivity, http.StatusNotFound},
		{ErrCodeUpstreamStorage, http.StatusBadGateway},
		{ErrCodeInternalCatalog, http.StatusServiceUnavailable},
		{ErrCodeInternalDB, http.StatusInternalServerError},
		{ErrorCode("something_else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAppErrorWithDetailsDoesNotMutate(t *testing.T) {
	orig := NewAppErrorWithDetails(ErrCodeValidationInvalidCatalog, "bad catalog", nil, map[string]any{"a": 1})
	withMore := orig.WithDetails(map[string]any{"b": 2})

	if len(orig.Details) != 1 {
		t.Errorf("original details mutated: %v", orig.Details)
	}
	if withMore.Details["a"] != 1 || withMore.Details["b"] != 2 {
		t.Errorf("merged details = %v", withMore.Details)
	}
}
