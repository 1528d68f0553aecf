package gateway

import (
	"context"
	"net/http"
	"time"
)

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status   string `json:"status"` // "ok" or "degraded"
	Sessions int    `json:"sessions"`
}

// SetHealthCheck installs an upstream dependency probe (typically the LLM
// provider). A failing probe turns /health into 503 degraded. Must be called
// before Start.
func (g *Gateway) SetHealthCheck(fn func(ctx context.Context) error) {
	g.healthCheck = fn
}

// handleHealth returns an http.HandlerFunc for GET /health.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Sessions: g.engine.Sessions().Len(),
		}

		if g.healthCheck != nil {
			if err := g.healthCheck(r.Context()); err != nil {
				g.logger.Warn("health check failed", "error", err)
				resp.Status = "degraded"
			}
		}

		code := http.StatusOK
		if resp.Status == "degraded" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, resp)
	}
}

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	Uptime   time.Duration `json:"uptime_seconds"`
	Sessions int           `json:"sessions"`
}

// handleStatus returns an http.HandlerFunc for GET /status.
func (g *Gateway) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, StatusResponse{
			Uptime:   time.Since(g.startedAt).Truncate(time.Second),
			Sessions: g.engine.Sessions().Len(),
		})
	}
}
