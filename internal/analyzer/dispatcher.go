package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/docgraph-labs/docgraph/internal/docparse"
	"github.com/docgraph-labs/docgraph/internal/graph"
	"github.com/docgraph-labs/docgraph/internal/statement"
)

// Dispatcher drives handlers over statement sequences: for each statement it
// selects every applicable handler variant in declaration order,
// instantiates it against the statement and context, and invokes it.
type Dispatcher struct {
	registry *Registry
	graph    *graph.Graph
	resolver *Resolver
	pipeline *Pipeline
	diags    *Diagnostics
	logger   *slog.Logger
}

func NewDispatcher(reg *Registry, g *graph.Graph, resolver *Resolver, docs *docparse.Parser, diags *Diagnostics, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		graph:    g,
		resolver: resolver,
		pipeline: NewPipeline(g, resolver, docs, diags, logger),
		diags:    diags,
		logger:   logger,
	}
}

// Pipeline exposes the registration pipeline for drivers and tests.
func (d *Dispatcher) Pipeline() *Pipeline { return d.pipeline }

// Process dispatches each statement in encounter order under pc. Handlers
// for one statement run in declaration order, each seeing the context as
// left by the previous one.
func (d *Dispatcher) Process(ctx context.Context, stmts []*statement.Statement, pc *Context) error {
	for _, st := range stmts {
		if err := d.dispatch(ctx, st, pc); err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs every applicable handler for one statement.
//
// Aborts skip to the next handler and are logged at debug verbosity only.
// A namespace-missing failure abandons just the operation that needed the
// namespace; the run continues. Everything else is fatal to the run.
func (d *Dispatcher) dispatch(ctx context.Context, st *statement.Statement, pc *Context) error {
	for _, desc := range d.registry.All() {
		if !desc.AppliesTo(st, pc, st.File) {
			continue
		}
		if desc.New == nil {
			return &ContractError{Handler: desc.Name, Op: "descriptor declares no factory"}
		}
		h := desc.New()
		if h == nil {
			return &ContractError{Handler: desc.Name, Op: "factory returned nil handler"}
		}

		err := h.Process(&Call{Ctx: ctx, Statement: st, Context: pc, dispatcher: d})
		if err == nil {
			continue
		}

		if errors.Is(err, ErrAborted) {
			d.logger.Debug("handler aborted",
				slog.String("handler", desc.Name),
				slog.String("file", st.File),
				slog.Int("line", st.Line),
				slog.String("reason", err.Error()))
			continue
		}

		var nm *NamespaceMissingError
		if errors.As(err, &nm) {
			if nm.File == "" {
				nm.File, nm.Line = st.File, st.Line
			}
			d.diags.Record(nm)
			d.logger.Debug("operation abandoned, namespace missing",
				slog.String("handler", desc.Name),
				slog.String("ref", nm.Ref.Path()),
				slog.String("file", st.File),
				slog.Int("line", st.Line))
			continue
		}

		return fmt.Errorf("handler %s at %s:%d: %w", desc.Name, st.File, st.Line, err)
	}
	return nil
}
