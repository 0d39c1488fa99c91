package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health: liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /health.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

// readinessTimeout bounds the whole probe, not each check.
const readinessTimeout = 3 * time.Second

// HealthDependenciesHandler answers the readiness probe by running every
// registered check concurrently.
type HealthDependenciesHandler struct {
	checks map[string]Check
}

func NewHealthDependenciesHandler() *HealthDependenciesHandler {
	return &HealthDependenciesHandler{checks: make(map[string]Check)}
}

// With registers a check under name and returns h for chaining.
func (h *HealthDependenciesHandler) With(name string, check Check) *HealthDependenciesHandler {
	h.checks[name] = check
	return h
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness handles GET /health/ready.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		deps    = make(map[string]dependencyStatus, len(h.checks))
		healthy = true
	)
	for name, check := range h.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st := dependencyStatus{Status: "ok"}
			if err := check(ctx); err != nil {
				st = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			}
			mu.Lock()
			defer mu.Unlock()
			deps[name] = st
			if st.Status != "ok" {
				healthy = false
			}
		}()
	}
	wg.Wait()

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
