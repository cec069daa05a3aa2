package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docgraph-labs/docgraph/internal/graph"
)

// DefaultMaxRetries is the number of full-queue deferrals a single
// resolution attempt is allowed before failing: one deferral, then give up.
const DefaultMaxRetries = 1

// Reprocessor re-drives the processing pass for deferred work. The driver
// implements it over its file queue: the file currently being analyzed moves
// to the back, and every not-yet-finished file is processed before control
// returns. The operation is idempotent and safe to call mid-resolution.
type Reprocessor interface {
	ReprocessRemaining(ctx context.Context) error
}

// Resolver is the resolution engine: it turns possibly-unresolved references
// into concrete entities, tolerating forward references by deferring the
// current file and re-running the pass over the remaining files.
//
// Each Resolve call owns its own attempt counter, so independent resolution
// attempts may each trigger reprocessing without corrupting one another.
type Resolver struct {
	graph  *graph.Graph
	source Reprocessor
	logger *slog.Logger

	// MaxRetries bounds deferrals per Resolve call.
	MaxRetries int
}

func NewResolver(g *graph.Graph, source Reprocessor, logger *slog.Logger) *Resolver {
	return &Resolver{graph: g, source: source, logger: logger, MaxRetries: DefaultMaxRetries}
}

// SetSource wires the reprocessor after construction; the driver and the
// resolver reference each other.
func (r *Resolver) SetSource(source Reprocessor) { r.source = source }

// Resolve resolves node with the engine's configured retry bound.
func (r *Resolver) Resolve(ctx context.Context, node graph.Node) (*graph.Entity, error) {
	return r.ResolveWithRetries(ctx, node, r.MaxRetries)
}

// ResolveWithRetries resolves node to a concrete entity. Concrete entities
// and the root resolve trivially. An unresolved reference triggers up to
// maxRetries deferrals; beyond that the engine fails with a typed
// NamespaceMissingError carrying the reference, never a silent default.
func (r *Resolver) ResolveWithRetries(ctx context.Context, node graph.Node, maxRetries int) (*graph.Entity, error) {
	switch n := node.(type) {
	case nil:
		return r.graph.Root(), nil
	case *graph.Entity:
		return n, nil
	case *graph.Reference:
		return r.resolveRef(ctx, n, maxRetries)
	default:
		return nil, fmt.Errorf("resolve: unknown node type %T", node)
	}
}

func (r *Resolver) resolveRef(ctx context.Context, ref *graph.Reference, maxRetries int) (*graph.Entity, error) {
	if ref.IsRoot() {
		return r.graph.Root(), nil
	}
	if r.source == nil {
		maxRetries = 0
	}

	for attempts := 1; ; attempts++ {
		if e, ok := ref.TryResolve(r.graph); ok {
			return e, nil
		}
		if attempts > maxRetries {
			return nil, &NamespaceMissingError{Ref: ref, Attempts: attempts}
		}

		r.logger.Debug("deferring unresolved reference",
			slog.String("ref", ref.Path()),
			slog.Int("attempt", attempts))

		if err := r.source.ReprocessRemaining(ctx); err != nil {
			return nil, fmt.Errorf("reprocess remaining files: %w", err)
		}
	}
}
