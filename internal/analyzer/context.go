package analyzer

import "github.com/docgraph-labs/docgraph/internal/graph"

// Context carries the ambient analysis state threaded through handler
// invocations: where in the graph the analysis currently is, plus two shared
// state bags.
//
// Handlers for the same statement see the context as left by earlier
// handlers. Mutating it to signal a sibling handler works but is
// order-dependent; treat it as a last resort.
type Context struct {
	// Namespace is the current enclosing first-class entity.
	Namespace graph.Node

	// Owner is the innermost enclosing entity; equal to Namespace unless
	// analysis descended into a method or block body.
	Owner graph.Node

	Visibility graph.Visibility
	Scope      graph.Scope

	// Globals lives for the whole run and is shared by every handler.
	Globals map[string]any

	// Extra is transient per-file state (e.g. the active documentation
	// group); the driver builds a fresh context for each file pass, so
	// it never outlives one.
	Extra map[string]any
}

// NewContext returns a context rooted at the graph root with default ambient
// state.
func NewContext(root *graph.Entity) *Context {
	return &Context{
		Namespace:  root,
		Owner:      root,
		Visibility: graph.VisibilityPublic,
		Scope:      graph.ScopeInstance,
		Globals:    make(map[string]any),
		Extra:      make(map[string]any),
	}
}

// InNamespace reports whether analysis is directly inside a namespace, i.e.
// not nested in a method or block body.
func (c *Context) InNamespace() bool {
	return c.Owner == c.Namespace
}

// ScopeOverride is a partial override applied when descending into a nested
// block. Nil/zero fields fall back to the defaults described on WithScope.
type ScopeOverride struct {
	Namespace  graph.Node
	Owner      graph.Node
	Visibility graph.Visibility
	Scope      graph.Scope
}

// WithScope runs body under the overridden context and restores the four
// ambient fields to their exact prior values on every exit path, including
// aborts and failures.
//
// Defaults: Namespace keeps its current value, Visibility resets to public,
// Scope resets to instance, and Owner falls back to the (new) namespace.
func (c *Context) WithScope(ov ScopeOverride, body func() error) error {
	savedNS, savedOwner := c.Namespace, c.Owner
	savedVis, savedScope := c.Visibility, c.Scope
	defer func() {
		c.Namespace, c.Owner = savedNS, savedOwner
		c.Visibility, c.Scope = savedVis, savedScope
	}()

	if ov.Namespace != nil {
		c.Namespace = ov.Namespace
	}
	c.Visibility = graph.VisibilityPublic
	if ov.Visibility != "" {
		c.Visibility = ov.Visibility
	}
	c.Scope = graph.ScopeInstance
	if ov.Scope != "" {
		c.Scope = ov.Scope
	}
	switch {
	case ov.Owner != nil:
		c.Owner = ov.Owner
	default:
		c.Owner = c.Namespace
	}

	return body()
}
