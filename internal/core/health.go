package core

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// healthCheckTimeout bounds the whole health check.
const healthCheckTimeout = 2 * time.Second

// HealthProbe checks one dependency, such as the loaded catalog or the
// database pool.
type HealthProbe interface {
	Name() string
	Check(ctx context.Context) error
}

// ProbeFunc adapts a function into a HealthProbe.
type ProbeFunc struct {
	ProbeName string
	Fn        func(ctx context.Context) error
}

func (p ProbeFunc) Name() string                    { return p.ProbeName }
func (p ProbeFunc) Check(ctx context.Context) error { return p.Fn(ctx) }

type componentStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]componentStatus `json:"components,omitempty"`
}

// HandleHealth runs every probe concurrently and answers 200 when all pass
// within the deadline, 503 otherwise. Probes still running at the deadline
// are reported as timed out.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{Status: "healthy"}
	if s.Config != nil {
		resp.Version = s.Config.Build.Version
	}
	if len(s.HealthProbes) == 0 {
		JSON(w, r, http.StatusOK, resp)
		return
	}

	var (
		mu      sync.Mutex
		results = make(map[int]error, len(s.HealthProbes))
		wg      sync.WaitGroup
	)
	for i, probe := range s.HealthProbes {
		i, probe := i, probe
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runProbe(ctx, probe)
			mu.Lock()
			results[i] = err
			mu.Unlock()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	mu.Lock()
	defer mu.Unlock()

	resp.Components = make(map[string]componentStatus, len(s.HealthProbes))
	for i, probe := range s.HealthProbes {
		err, finished := results[i]
		switch {
		case !finished:
			resp.Status = "unhealthy"
			resp.Components[probe.Name()] = componentStatus{Status: "unhealthy", Message: "health check timed out"}
		case err != nil:
			resp.Status = "unhealthy"
			resp.Components[probe.Name()] = componentStatus{Status: "unhealthy", Message: err.Error()}
		default:
			resp.Components[probe.Name()] = componentStatus{Status: "healthy"}
		}
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	JSON(w, r, status, resp)
}

func runProbe(ctx context.Context, p HealthProbe) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("probe panicked: %v", rec)
		}
	}()
	return p.Check(ctx)
}
