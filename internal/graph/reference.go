package graph

import "strings"

// Reference is an unresolved placeholder for an entity that may not exist in
// the graph yet. It pairs a qualified name with the namespace it was seen
// from, which anchors lookup. A reference owns nothing and carries no retry
// state; retry bookkeeping belongs to the resolution engine.
type Reference struct {
	name string
	ns   Node
}

// NewReference creates a reference to name as seen from ns. A name prefixed
// with "::" is absolute from the root.
func NewReference(ns Node, name string) *Reference {
	return &Reference{name: name, ns: ns}
}

// Name returns the referenced name exactly as written in source.
func (r *Reference) Name() string { return r.name }

// Path returns the qualified name the reference would have if it resolved
// relative to its context namespace.
func (r *Reference) Path() string {
	name := strings.TrimPrefix(r.name, "::")
	if strings.HasPrefix(r.name, "::") || r.ns == nil || r.ns.IsRoot() {
		return name
	}
	return r.ns.Path() + "::" + name
}

// IsRoot reports whether the reference denotes the graph root itself.
func (r *Reference) IsRoot() bool {
	return r.name == "" || r.name == "::"
}

// Context returns the namespace the reference is anchored to.
func (r *Reference) Context() Node { return r.ns }

// TryResolve looks the reference up in g. Relative names are searched from
// the context namespace outward through each enclosing namespace, innermost
// first; absolute names go straight to the root. It reports false when the
// entity is not (yet) in the graph.
func (r *Reference) TryResolve(g *Graph) (*Entity, bool) {
	if r.IsRoot() {
		return g.Root(), true
	}

	name := strings.TrimPrefix(r.name, "::")
	if strings.HasPrefix(r.name, "::") {
		e := g.Lookup(name)
		return e, e != nil
	}

	for ns := r.resolvedContext(g); ns != nil; ns = parentOf(ns) {
		if e := g.At(ns, name); e != nil {
			return e, true
		}
		if ns.IsRoot() {
			break
		}
	}
	return nil, false
}

// resolvedContext returns the context namespace as a concrete entity,
// chasing nested references when possible.
func (r *Reference) resolvedContext(g *Graph) *Entity {
	switch ns := r.ns.(type) {
	case *Entity:
		return ns
	case *Reference:
		if e, ok := ns.TryResolve(g); ok {
			return e
		}
	}
	return g.Root()
}

func parentOf(e *Entity) *Entity {
	if e.IsRoot() {
		return nil
	}
	if p, ok := e.Namespace().(*Entity); ok {
		return p
	}
	return nil
}
