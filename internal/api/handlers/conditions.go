package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fairweather/internal/conditions"
	"fairweather/internal/core"
	"fairweather/internal/types"
)

// ConditionHandler exposes the condition language for catalog authors.
type ConditionHandler struct {
	validator *core.Validator
	maxBody   int64
}

// NewConditionHandler creates a ConditionHandler.
func NewConditionHandler(val *core.Validator, maxBody int64) *ConditionHandler {
	return &ConditionHandler{validator: val, maxBody: maxBody}
}

// RegisterRoutes mounts the condition endpoints.
func (h *ConditionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/evaluate", h.HandleEvaluate)
}

// EvaluateConditionRequest is the body of POST /v1/conditions/evaluate.
type EvaluateConditionRequest struct {
	Condition string              `json:"condition" validate:"required,max=200"`
	Weather   types.WeatherRecord `json:"weather"`
}

// EvaluateConditionResponse describes the parsed condition and its result.
type EvaluateConditionResponse struct {
	Parsed      conditions.Condition `json:"parsed"`
	Kind        string               `json:"kind"`
	Canonical   string               `json:"canonical"`
	ParseError  string               `json:"parseError,omitempty"`
	Attribute   types.Attribute      `json:"resolvedAttribute,omitempty"`
	Outcome     string               `json:"outcome"`
	Matches     bool                 `json:"matches"`
	MatchesSafe bool                 `json:"matchesSafe"`
	Score       float64              `json:"score"`
}

// HandleEvaluate handles POST /v1/conditions/evaluate. A malformed
// condition is not a request error: it is reported in the response with
// the outcome the engine would give it.
func (h *ConditionHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateConditionRequest
	if err := core.DecodeJSON(w, r, h.maxBody, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	c, parseErr := conditions.ParseStrict(req.Condition)
	resp := EvaluateConditionResponse{
		Parsed:      c,
		Kind:        c.Kind.String(),
		Canonical:   c.String(),
		Outcome:     conditions.Evaluate(c, req.Weather).String(),
		Matches:     conditions.Matches(c, req.Weather),
		MatchesSafe: conditions.MatchesSafe(c, req.Weather),
		Score:       conditions.Score(c, req.Weather),
	}
	if parseErr != nil {
		resp.ParseError = parseErr.Error()
	} else {
		resp.Attribute = types.NormalizeAttribute(c.Attribute)
	}
	core.Data(w, r, resp)
}
