package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", g.handleHealth())
	r.Get("/status", g.handleStatus())
	r.Handle("/metrics", promhttp.HandlerFor(g.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/api/conversation", func(r chi.Router) {
		r.Post("/", g.handleTurn())
		r.Get("/{id}", g.handleTranscript())
		r.Post("/{id}/reset", g.handleReset())
		r.Get("/{id}/stream", g.handleStream())
	})

	return r
}
