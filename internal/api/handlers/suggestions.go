package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fairweather/internal/core"
	"fairweather/internal/engine"
	"fairweather/internal/recommend"
)

// PlannerService is the planning contract the suggestion handler needs.
type PlannerService interface {
	Plan(ctx context.Context, req recommend.PlanRequest) (*recommend.Plan, error)
}

// SuggestionHandler serves planning and hero selection.
type SuggestionHandler struct {
	planner   PlannerService
	validator *core.Validator
	logger    *slog.Logger
	maxBody   int64
}

// NewSuggestionHandler creates a SuggestionHandler.
func NewSuggestionHandler(planner PlannerService, val *core.Validator, logger *slog.Logger, maxBody int64) *SuggestionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestionHandler{
		planner:   planner,
		validator: val,
		logger:    logger,
		maxBody:   maxBody,
	}
}

// RegisterRoutes mounts the suggestion endpoints.
func (h *SuggestionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandlePlan)
	r.Post("/hero", h.HandleHero)
}

// HandlePlan handles POST /v1/suggestions. Limits on days and interests are
// enforced by the planner so every entry point shares them.
func (h *SuggestionHandler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	var req recommend.PlanRequest
	if err := core.DecodeJSON(w, r, h.maxBody, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	plan, err := h.planner.Plan(r.Context(), req)
	if err != nil {
		h.logger.WarnContext(r.Context(), "plan request failed", "error", err)
		core.Error(w, r, err)
		return
	}
	core.Data(w, r, plan)
}

// HeroRequest is the body of POST /v1/suggestions/hero.
type HeroRequest struct {
	Suggestions []engine.ScoredSuggestion `json:"suggestions" validate:"required,min=1,dive"`
	IsEvening   bool                      `json:"isEvening"`
}

// HeroResponse carries the selected hero and the thresholds that applied.
type HeroResponse struct {
	Hero       engine.ScoredSuggestion `json:"hero"`
	Thresholds engine.HeroThresholds   `json:"thresholds"`
}

// HandleHero handles POST /v1/suggestions/hero.
func (h *SuggestionHandler) HandleHero(w http.ResponseWriter, r *http.Request) {
	var req HeroRequest
	if err := core.DecodeJSON(w, r, h.maxBody, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	hero, _ := engine.SelectHero(req.Suggestions, req.IsEvening)
	core.Data(w, r, HeroResponse{
		Hero:       hero,
		Thresholds: engine.ThresholdsFor(req.IsEvening),
	})
}
