package analyzer

import (
	"context"
	"errors"

	"github.com/docgraph-labs/docgraph/internal/graph"
	"github.com/docgraph-labs/docgraph/internal/statement"
)

// Handler processes one statement. A fresh instance is created per matching
// statement via the descriptor's factory; all invocation state arrives
// through the Call.
//
// Returning ErrAborted (or an error wrapping it) stops this handler without
// affecting sibling handlers or the run. Any other error is treated per the
// dispatcher's failure rules.
type Handler interface {
	Process(c *Call) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(c *Call) error

func (f HandlerFunc) Process(c *Call) error { return f(c) }

// Call binds one handler invocation to its statement, the ambient processing
// context, and the engine services a handler may use.
type Call struct {
	Ctx        context.Context
	Statement  *statement.Statement
	Context    *Context
	dispatcher *Dispatcher
}

// Graph returns the entity graph under construction.
func (c *Call) Graph() *graph.Graph { return c.dispatcher.graph }

// Register runs the registration pipeline over the produced entities and
// returns them for chaining. Nil entries are skipped.
func (c *Call) Register(ents ...*graph.Entity) ([]*graph.Entity, error) {
	return c.dispatcher.pipeline.Register(c.Ctx, ents, c.Context, c.Statement, nil)
}

// RegisterWith is Register with a caller hook invoked on each entity after
// load-ensure and before the generic enrichment steps.
func (c *Call) RegisterWith(onCreated func(*graph.Entity) error, ents ...*graph.Entity) ([]*graph.Entity, error) {
	return c.dispatcher.pipeline.Register(c.Ctx, ents, c.Context, c.Statement, onCreated)
}

// Resolve resolves a node to a concrete entity through the resolution
// engine, deferring to later files within the retry bound. Failures carry
// the statement's file and line.
func (c *Call) Resolve(node graph.Node) (*graph.Entity, error) {
	ent, err := c.dispatcher.resolver.Resolve(c.Ctx, node)
	if err != nil {
		annotate(err, c.Statement)
	}
	return ent, err
}

// ParseBlock continues analysis into the statement's nested block under the
// overridden context. The prior context is restored on every exit path.
func (c *Call) ParseBlock(ov ScopeOverride) error {
	return c.Context.WithScope(ov, func() error {
		return c.dispatcher.Process(c.Ctx, c.Statement.Block, c.Context)
	})
}

// EnsureNamespace returns the namespace entity with the given (possibly
// multi-segment) name under the current namespace, creating missing segments
// as modules and the final segment with the requested kind. Reopening an
// existing namespace returns the known entity.
func (c *Call) EnsureNamespace(kind graph.Kind, name string) *graph.Entity {
	g := c.dispatcher.graph
	ns := c.Context.Namespace

	segs := graph.SplitPath(name)
	for i, seg := range segs {
		if e := g.At(ns, seg); e != nil {
			ns = e
			continue
		}
		k := graph.KindModule
		if i == len(segs)-1 {
			k = kind
		}
		ns = g.Register(graph.NewEntity(k, ns, seg))
	}
	ent, _ := ns.(*graph.Entity)
	return ent
}

// NewMethod returns the method entity with the given name and scope in the
// current namespace, creating it if unknown.
func (c *Call) NewMethod(name string, scope graph.Scope) *graph.Entity {
	m := graph.NewEntity(graph.KindMethod, c.Context.Namespace, name)
	m.Scope = scope
	if existing := c.dispatcher.graph.Lookup(m.Path()); existing != nil {
		return existing
	}
	return m
}

// NewConstant returns the constant entity with the given name in the current
// namespace, creating it if unknown.
func (c *Call) NewConstant(name string) *graph.Entity {
	k := graph.NewEntity(graph.KindConstant, c.Context.Namespace, name)
	if existing := c.dispatcher.graph.Lookup(k.Path()); existing != nil {
		return existing
	}
	return k
}

func annotate(err error, st *statement.Statement) {
	var nm *NamespaceMissingError
	if errors.As(err, &nm) && nm.File == "" {
		nm.File = st.File
		nm.Line = st.Line
	}
}
