package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fairweather/internal/types"
)

// defaultMaxBodyBytes applies when no limit is configured.
const defaultMaxBodyBytes int64 = 1 << 20

// Chassis-level error codes.
const (
	errCodeValidationInvalidJSON types.ErrorCode = types.ErrCodeValidationInvalidJSON
	errCodeValidationMethod      types.ErrorCode = "validation_method_not_allowed"
	errCodeNotFoundRoute         types.ErrorCode = "not_found_route"
)

// APIResponse is the envelope for successful responses.
type APIResponse struct {
	Data any `json:"data"`
}

// APIErrorResponse is the envelope for error responses.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the client-visible error description.
type ErrorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id"`
}

// JSON writes data with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(APIErrorResponse{Error: ErrorDetail{
			Code:      string(types.ErrCodeInternalUnexpected),
			Message:   "failed to marshal response",
			RequestID: types.GetRequestID(r.Context()),
		}})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Data writes a 200 response wrapped in the APIResponse envelope.
func Data(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusOK, APIResponse{Data: data})
}

// Error writes err as a structured error response. An *types.AppError in the
// chain decides the status; anything else is an opaque 500. Wrapped causes
// are never sent to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	requestID := types.GetRequestID(r.Context())

	var appErr *types.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus()
		if appErr.Code == errCodeValidationMethod {
			status = http.StatusMethodNotAllowed
		}
		JSON(w, r, status, APIErrorResponse{Error: ErrorDetail{
			Code:      string(appErr.Code),
			Message:   appErr.Message,
			Details:   appErr.Details,
			RequestID: requestID,
		}})
		return
	}

	JSON(w, r, http.StatusInternalServerError, APIErrorResponse{Error: ErrorDetail{
		Code:      string(types.ErrCodeInternalUnexpected),
		Message:   "an unexpected error occurred",
		RequestID: requestID,
	}})
}

// DecodeJSON strictly decodes a single JSON value of at most limit bytes
// into dst. A non-positive limit uses the 1 MB default. All failures are
// validation_invalid_json AppErrors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return mapDecodeError(err)
	}
	if dec.More() {
		return types.NewAppError(errCodeValidationInvalidJSON, "request body must contain a single JSON object", nil)
	}
	return nil
}

func mapDecodeError(err error) *types.AppError {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return types.NewAppError(errCodeValidationInvalidJSON,
			fmt.Sprintf("request body must not exceed %d bytes", maxBytesErr.Limit), err)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return types.NewAppErrorWithDetails(errCodeValidationInvalidJSON, "malformed JSON in request body", err,
			map[string]any{"offset": syntaxErr.Offset})
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return types.NewAppErrorWithDetails(errCodeValidationInvalidJSON, "invalid value for field", err,
			map[string]any{"field": typeErr.Field, "expected": typeErr.Type.String()})
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return types.NewAppErrorWithDetails(errCodeValidationInvalidJSON, "unknown field in request body", err,
			map[string]any{"field": strings.Trim(field, `"`)})
	}

	if errors.Is(err, io.EOF) {
		return types.NewAppError(errCodeValidationInvalidJSON, "request body must not be empty", err)
	}

	return types.NewAppError(errCodeValidationInvalidJSON, "invalid JSON in request body", err)
}
