// Package handlers maps the Fairweather HTTP API onto the engine.
//
// Routes, relative to /v1:
//   - GET  /activities               catalog listing, filterable by category and tag
//   - GET  /activities/{id}          one activity by id or display name
//   - POST /activities/{id}/evaluate classify and score one activity for a weather record
//   - POST /suggestions              plan suggestions for a run of forecast days
//   - POST /suggestions/hero         pick the hero from a scored list
//   - POST /conditions/evaluate      parse and evaluate one condition string
package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"fairweather/internal/catalog"
	"fairweather/internal/core"
	"fairweather/internal/engine"
	"fairweather/internal/types"
)

// CatalogReader is the read side of the activity catalog.
type CatalogReader interface {
	All() []*catalog.Activity
	Resolve(ref string) (*catalog.Activity, bool)
}

// ActivityHandler serves the catalog.
type ActivityHandler struct {
	catalog   CatalogReader
	boost     engine.BoostPolicy
	validator *core.Validator
	logger    *slog.Logger
	clock     types.Clock
	maxBody   int64

	eveningStartHour int
}

// ActivityHandlerOptions carries the optional ActivityHandler settings.
type ActivityHandlerOptions struct {
	Boost            engine.BoostPolicy
	Clock            types.Clock
	MaxBodyBytes     int64
	EveningStartHour int
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(cat CatalogReader, val *core.Validator, logger *slog.Logger, opts ActivityHandlerOptions) *ActivityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Boost == nil {
		opts.Boost = engine.DefaultBoostPolicy{}
	}
	if opts.Clock == nil {
		opts.Clock = types.RealClock{}
	}
	opts.EveningStartHour = engine.EffectiveEveningStartHour(opts.EveningStartHour)
	return &ActivityHandler{
		catalog:          cat,
		boost:            opts.Boost,
		validator:        val,
		logger:           logger,
		clock:            opts.Clock,
		maxBody:          opts.MaxBodyBytes,
		eveningStartHour: opts.EveningStartHour,
	}
}

// RegisterRoutes mounts the activity endpoints.
func (h *ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Post("/{id}/evaluate", h.HandleEvaluate)
}

// ActivityListResponse is the body of GET /v1/activities.
type ActivityListResponse struct {
	Activities []types.ActivityDefinition `json:"activities"`
	Count      int                        `json:"count"`
}

// HandleList handles GET /v1/activities. The optional "category" and "tag"
// query parameters filter case-insensitively; category matches either the
// primary or the secondary category.
func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))

	resp := ActivityListResponse{Activities: []types.ActivityDefinition{}}
	for _, a := range h.catalog.All() {
		if category != "" && !strings.EqualFold(a.Category, category) && !strings.EqualFold(a.SecondaryCategory, category) {
			continue
		}
		if tag != "" && !a.HasTag(tag) {
			continue
		}
		resp.Activities = append(resp.Activities, a.ActivityDefinition)
	}
	resp.Count = len(resp.Activities)

	w.Header().Set("Cache-Control", "public, max-age=300")
	core.Data(w, r, resp)
}

// HandleGet handles GET /v1/activities/{id}.
func (h *ActivityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.lookup(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	core.Data(w, r, a.ActivityDefinition)
}

// EvaluateActivityRequest is the body of POST /v1/activities/{id}/evaluate.
type EvaluateActivityRequest struct {
	Weather types.WeatherRecord `json:"weather" validate:"required"`
	// Date is the forecast day (YYYY-MM-DD); defaults to the evaluation time.
	Date  string     `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Moods []string   `json:"moods,omitempty"`
	At    *time.Time `json:"at,omitempty"`
}

// EvaluateActivityResponse reports how one activity fares in one weather record.
type EvaluateActivityResponse struct {
	ActivityID string                 `json:"activityId"`
	Level      types.SuitabilityLevel `json:"evaluation"`
	BaseScore  int                    `json:"baseScore"`
	Score      int                    `json:"score"`
	Pleasant   bool                   `json:"pleasant"`
	IsEvening  bool                   `json:"isEvening"`
	Tags       []string               `json:"contextTags"`
}

// HandleEvaluate handles POST /v1/activities/{id}/evaluate.
func (h *ActivityHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	a, err := h.lookup(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	var req EvaluateActivityRequest
	if err := core.DecodeJSON(w, r, h.maxBody, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	now := h.clock.Now()
	if req.At != nil {
		now = *req.At
	}
	var date time.Time
	if req.Date != "" {
		date, _ = time.Parse(time.DateOnly, req.Date)
	}

	sctx := engine.NewScoreContext(now, date, req.Moods, h.eveningStartHour)
	core.Data(w, r, EvaluateActivityResponse{
		ActivityID: a.ID,
		Level:      engine.Classify(a, req.Weather),
		BaseScore:  engine.BaseScore(a, req.Weather, sctx),
		Score:      engine.Score(a, req.Weather, sctx, h.boost),
		Pleasant:   engine.IsPleasant(req.Weather),
		IsEvening:  sctx.IsEvening,
		Tags:       sctx.Tags,
	})
}

func (h *ActivityHandler) lookup(r *http.Request) (*catalog.Activity, error) {
	ref := chi.URLParam(r, "id")
	a, ok := h.catalog.Resolve(ref)
	if !ok {
		return nil, types.NewAppErrorWithDetails(types.ErrCodeNotFoundActivity, "activity not found", nil,
			map[string]any{"id": ref})
	}
	return a, nil
}
