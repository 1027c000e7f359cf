package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"fairweather/internal/catalog"
	"fairweather/internal/core"
	"fairweather/internal/recommend"
	"fairweather/internal/types"
)

// wednesdayMorning is 2026-10-14 09:00 UTC.
var wednesdayMorning = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]types.ActivityDefinition{
		{
			ID: "running", Name: "Running", Category: "sport", WeatherSensitive: true,
			Tags:              []string{"morning", "quick"},
			PoorConditions:    []string{"precipitation>5"},
			GoodConditions:    []string{"temperature=5..25", "windSpeed<15"},
			PerfectConditions: []string{"temperature=10..15", "windSpeed<5"},
			IndoorAlternative: "Gym Workout",
		},
		{
			ID: "gym", Name: "Gym Workout", Category: "sport", SecondaryCategory: "indoor",
			Tags: []string{"after-work"},
		},
		{
			ID: "stargazing", Name: "Stargazing", Category: "nature", WeatherSensitive: true,
			Tags:              []string{"evening", "romantic"},
			PoorConditions:    []string{"clouds>60"},
			PerfectConditions: []string{"clouds<10"},
		},
	}, discardLogger())
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

// newTestRouter wires every handler group the way cmd/api does.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cat := testCatalog(t)
	clock := types.FixedClock{T: wednesdayMorning}
	val := core.NewValidator()
	logger := discardLogger()

	planner := recommend.NewPlanner(cat, recommend.Config{}, nil, nil, logger, clock)
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		for _, register := range Registrars(
			NewActivityHandler(cat, val, logger, ActivityHandlerOptions{Clock: clock}),
			NewSuggestionHandler(planner, val, logger, 0),
			NewConditionHandler(val, 0),
		) {
			register(r)
		}
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeData unwraps the {"data": ...} envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v (body %s)", err, rec.Body.String())
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body core.APIErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (body %s)", err, rec.Body.String())
	}
	return body.Error.Code
}
