// Package api serves a finished documentation graph over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/docgraph-labs/docgraph/internal/graph"
)

// NewRouter builds the doc-server routes over the given graph.
func NewRouter(logger *slog.Logger, g *graph.Graph) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	entities := NewEntityHandler(logger, g)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/entities", entities.List)
		r.Get("/entities/*", entities.Get)
		r.Get("/stats", entities.Stats)
	})

	return r
}
