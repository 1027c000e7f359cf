package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) healthResponse {
	t.Helper()
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	return resp
}

func TestHandleHealth_NoProbes(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Status != "healthy" || resp.Version != "test" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHandleHealth_ProbeOutcomes(t *testing.T) {
	ok := ProbeFunc{ProbeName: "catalog", Fn: func(context.Context) error { return nil }}
	failing := ProbeFunc{ProbeName: "database", Fn: func(context.Context) error { return errors.New("pool exhausted") }}
	panicking := ProbeFunc{ProbeName: "queue", Fn: func(context.Context) error { panic("nil client") }}

	tests := []struct {
		name       string
		probes     []HealthProbe
		wantStatus int
		wantState  map[string]string
	}{
		{
			name:       "all healthy",
			probes:     []HealthProbe{ok},
			wantStatus: http.StatusOK,
			wantState:  map[string]string{"catalog": "healthy"},
		},
		{
			name:       "one failing",
			probes:     []HealthProbe{ok, failing},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  map[string]string{"catalog": "healthy", "database": "unhealthy"},
		},
		{
			name:       "panic contained",
			probes:     []HealthProbe{panicking},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  map[string]string{"queue": "unhealthy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			s.HealthProbes = tt.probes
			rec := httptest.NewRecorder()
			s.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeHealth(t, rec)
			for name, want := range tt.wantState {
				if got := resp.Components[name].Status; got != want {
					t.Errorf("%s = %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestHandleHealth_SlowProbeTimesOut(t *testing.T) {
	slow := ProbeFunc{ProbeName: "s3", Fn: func(ctx context.Context) error {
		select {
		case <-time.After(10 * time.Second):
			return nil
		case <-ctx.Done():
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()
		}
	}}
	s := newTestServer(t, nil)
	s.HealthProbes = []HealthProbe{slow}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	rec := httptest.NewRecorder()
	s.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if got := decodeHealth(t, rec).Components["s3"].Message; got != "health check timed out" {
		t.Errorf("message = %q", got)
	}
}
