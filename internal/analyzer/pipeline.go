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

// Pipeline applies the fixed registration sequence to every entity a handler
// produces: namespace load-ensure, caller hook, file/line/comment
// attachment, source attachment, visibility, docstring parsing, transitive
// tag inheritance, group assignment, dynamic detection, and module-function
// duplication.
type Pipeline struct {
	graph    *graph.Graph
	resolver *Resolver
	docs     *docparse.Parser
	diags    *Diagnostics
	logger   *slog.Logger
}

func NewPipeline(g *graph.Graph, resolver *Resolver, docs *docparse.Parser, diags *Diagnostics, logger *slog.Logger) *Pipeline {
	return &Pipeline{graph: g, resolver: resolver, docs: docs, diags: diags, logger: logger}
}

// Register finalizes each non-nil entity in ents and returns ents unchanged
// for caller chaining. An entity whose namespace cannot be resolved within
// the retry bound is skipped and recorded; that condition never fails the
// call. Any other failure propagates.
func (p *Pipeline) Register(ctx context.Context, ents []*graph.Entity, pc *Context, st *statement.Statement, onCreated func(*graph.Entity) error) ([]*graph.Entity, error) {
	for _, e := range ents {
		if e == nil {
			continue
		}
		if err := p.registerOne(ctx, e, pc, st, onCreated); err != nil {
			return ents, err
		}
	}
	return ents, nil
}

func (p *Pipeline) registerOne(ctx context.Context, e *graph.Entity, pc *Context, st *statement.Statement, onCreated func(*graph.Entity) error) error {
	// 1. Load-ensure: the namespace must be a concrete entity before the
	// entity can be attached as a child. Unresolvable namespaces abandon
	// registration of this entity only.
	ns, err := p.resolver.Resolve(ctx, e.Namespace())
	if err != nil {
		var nm *NamespaceMissingError
		if errors.As(err, &nm) {
			if nm.File == "" {
				nm.File, nm.Line = st.File, st.Line
			}
			p.diags.Record(nm)
			p.logger.Debug("registration skipped",
				slog.String("entity", e.Name),
				slog.String("namespace", nm.Ref.Path()),
				slog.String("file", st.File),
				slog.Int("line", st.Line))
			return nil
		}
		return fmt.Errorf("load namespace of %s: %w", e.Name, err)
	}
	e.SetNamespace(ns)
	e = p.graph.Register(e)

	// 2. Caller hook, before the generic steps so generic defaults never
	// overwrite caller-set fields.
	if onCreated != nil {
		if err := onCreated(e); err != nil {
			return err
		}
	}

	// 3. File/line/comment attachment, additive across reopenings.
	e.AddFile(st.File, st.Line, st.CommentText())

	// 4. Source attachment, method-like only, write-once.
	if e.Kind.MethodLike() && e.Source == "" {
		e.Source = st.Source
		e.SourceKind = st.Kind
		if e.Signature == "" {
			e.Signature = st.Text
		}
	}

	// 5. Visibility from context, unless the entity is namespace-like or a
	// value was already set explicitly.
	if !e.Kind.NamespaceLike() && e.Visibility == "" {
		e.Visibility = pc.Visibility
	}

	// 6. Docstring parsing runs unconditionally so a structured docstring
	// always exists; an empty reopen never clobbers earlier documentation.
	ds := p.docs.Parse(st.CommentText(), e.Path())
	ds.HashFlag = st.HashFlag
	ds.LineRange = st.CommentsRange
	if e.Docstring == nil || !emptyDocstring(ds) {
		e.Docstring = ds
	}

	// 7. Transitive tag inheritance: local definitions always win, and an
	// unresolved namespace contributes nothing.
	if nsEnt, ok := e.Namespace().(*graph.Entity); ok {
		for _, name := range p.docs.Transitive() {
			if e.HasTag(name) {
				continue
			}
			if t := nsEnt.Tag(name); t != nil {
				e.AddTag(&docparse.Tag{Name: t.Name, Text: t.Text})
			}
		}
	}

	// 8. Group assignment from transient state, also recorded on the
	// namespace's set of known groups.
	if group, ok := pc.Extra["group"].(string); ok && group != "" {
		e.Group = group
		if nsEnt, ok := e.Namespace().(*graph.Entity); ok {
			nsEnt.AddGroupName(group)
		}
	}

	// 9. Dynamic detection: registered inside a method or block body.
	if !pc.InNamespace() {
		e.Dynamic = true
	}

	// 10. Module-function duplication.
	if e.Kind.MethodLike() && e.ModuleFunction {
		p.duplicateModuleFunction(e)
	}

	p.logger.Debug("registered",
		slog.String("entity", e.Path()),
		slog.String("kind", string(e.Kind)),
		slog.String("file", st.File),
		slog.Int("line", st.Line))
	return nil
}

// duplicateModuleFunction creates the namespace-scoped sibling of a module
// function: all fields copied, visibility forced private. The original keeps
// its own visibility and scope. Registration is idempotent, so a reopened
// module function never grows a second sibling.
func (p *Pipeline) duplicateModuleFunction(m *graph.Entity) {
	dup := graph.NewEntity(graph.KindMethod, m.Namespace(), m.Name)
	m.CopyTo(dup)
	if m.Scope == graph.ScopeClass {
		dup.Scope = graph.ScopeInstance
	} else {
		dup.Scope = graph.ScopeClass
	}
	dup.Visibility = graph.VisibilityPrivate
	dup.ModuleFunction = false
	p.graph.Register(dup)
}

func emptyDocstring(d *docparse.Docstring) bool {
	return d.Text == "" && len(d.Tags) == 0
}
