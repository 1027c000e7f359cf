package types

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Error code constants. Handlers and loaders use these instead of hardcoded strings.
const (
	// Validation (400)
	ErrCodeValidationMissingField   ErrorCode = "validation_missing_required_field"
	ErrCodeValidationInvalidJSON    ErrorCode = "validation_invalid_json"
	ErrCodeValidationInvalidDate    ErrorCode = "validation_invalid_date"
	ErrCodeValidationInvalidCatalog ErrorCode = "validation_invalid_catalog"
	ErrCodeValidationTooManyDays    ErrorCode = "validation_too_many_days"
	ErrCodeValidationNoInterests    ErrorCode = "validation_no_interests"
	ErrCodeValidationInvalidRequest ErrorCode = "validation_invalid_request"

	// Not Found (404)
	ErrCodeNotFoundActivity ErrorCode = "not_found_activity"

	// Internal/Upstream (500/502)
	ErrCodeInternalDB         ErrorCode = "internal_database_error"
	ErrCodeInternalUnexpected ErrorCode = "internal_unexpected_error"
	ErrCodeInternalCatalog    ErrorCode = "internal_catalog_unavailable"
	ErrCodeUpstreamStorage    ErrorCode = "upstream_storage_unavailable"
	ErrCodeUpstreamQueue      ErrorCode = "upstream_queue_unavailable"
)

// HTTPStatus maps an ErrorCode to its corresponding HTTP status code.
// Returns 500 for unrecognized error codes as a safe default.
func (c ErrorCode) HTTPStatus() int {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "validation_"):
		return http.StatusBadRequest
	case strings.HasPrefix(s, "not_found_"):
		return http.StatusNotFound
	case strings.HasPrefix(s, "upstream_"):
		return http.StatusBadGateway
	case s == string(ErrCodeInternalCatalog):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the standard application error type used throughout the service.
// It carries a typed code for HTTP mapping and supports error chains.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code corresponding to this error's code.
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error with the provided details merged in.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Details: merged,
	}
}

// NewAppError creates a new AppError with the given code, message, and optional
// underlying error.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewAppErrorWithDetails creates a new AppError carrying structured details.
func NewAppErrorWithDetails(code ErrorCode, message string, err error, details map[string]any) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}
