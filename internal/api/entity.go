package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/docgraph-labs/docgraph/internal/graph"
	"github.com/docgraph-labs/docgraph/pkg/apierr"
)

// EntityHandler serves entity queries over a finished graph. The graph is
// read-only once analysis completes, so handlers need no locking.
type EntityHandler struct {
	logger *slog.Logger
	graph  *graph.Graph
}

func NewEntityHandler(logger *slog.Logger, g *graph.Graph) *EntityHandler {
	return &EntityHandler{logger: logger, graph: g}
}

// List returns entities, optionally filtered by kind and namespace path.
// GET /api/v1/entities?kind=method&namespace=Foo::Bar&limit=100
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	nsPath := r.URL.Query().Get("namespace")
	limit := intQuery(r, "limit", 200, 1000)

	var out []entityView
	for _, e := range h.graph.All() {
		if kind != "" && string(e.Kind) != kind {
			continue
		}
		if nsPath != "" && e.Namespace().Path() != nsPath {
			continue
		}
		out = append(out, viewOf(e))
		if len(out) >= limit {
			break
		}
	}
	if out == nil {
		out = []entityView{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entities": out,
		"count":    len(out),
	})
}

// Get returns a single entity by qualified path.
// GET /api/v1/entities/Foo::Bar#baz
func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	// Method paths contain "#", which clients must percent-encode; chi hands
	// the wildcard back still escaped.
	path, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || path == "" {
		writeAPIError(w, h.logger, apierr.InvalidQuery("path"))
		return
	}

	e := h.graph.Lookup(path)
	if e == nil {
		writeAPIError(w, h.logger, apierr.EntityNotFound(path))
		return
	}

	writeJSON(w, http.StatusOK, viewOf(e))
}

// Stats returns per-kind entity counts.
// GET /api/v1/stats
func (h *EntityHandler) Stats(w http.ResponseWriter, r *http.Request) {
	byKind := make(map[string]int)
	for _, e := range h.graph.All() {
		byKind[string(e.Kind)]++
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   h.graph.Count(),
		"by_kind": byKind,
	})
}

func intQuery(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
