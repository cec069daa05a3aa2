// Package graph holds the in-memory documentation graph: named entities
// (modules, classes, methods, constants) arranged under a single root, plus
// the unresolved references the analysis core uses for forwards declarations.
package graph

import "sort"

// Graph is the mutable ownership graph of named entities for one analysis
// run. Entities are indexed by qualified path; registering an existing path
// returns the already-known entity so that reopened namespaces converge on a
// single node.
type Graph struct {
	root *Entity
	all  map[string]*Entity
}

func New() *Graph {
	root := &Entity{Kind: KindRoot, Visibility: VisibilityPublic, Scope: ScopeInstance}
	return &Graph{root: root, all: make(map[string]*Entity)}
}

// Root returns the graph root, the implicit namespace of all top-level
// entities.
func (g *Graph) Root() *Entity { return g.root }

// Register indexes e by path and attaches it to its namespace when that
// namespace is already a concrete entity. If the path is taken the existing
// entity is returned unchanged.
func (g *Graph) Register(e *Entity) *Entity {
	path := e.Path()
	if existing, ok := g.all[path]; ok {
		return existing
	}
	g.all[path] = e
	if ns, ok := e.Namespace().(*Entity); ok {
		ns.AddChild(e)
	}
	return e
}

// Lookup returns the entity with the given qualified path, or nil. The empty
// path returns the root.
func (g *Graph) Lookup(path string) *Entity {
	if path == "" {
		return g.root
	}
	return g.all[path]
}

// At returns the direct member of ns with the given (possibly multi-segment)
// name, or nil. ns must be a concrete entity for the lookup to proceed.
func (g *Graph) At(ns Node, name string) *Entity {
	cur, ok := ns.(*Entity)
	if !ok {
		return nil
	}
	for _, seg := range SplitPath(name) {
		next := cur.Child(seg)
		if next == nil {
			return nil
		}
		cur = next
	}
	if cur == ns {
		return nil
	}
	return cur
}

// Count returns the number of registered entities, excluding the root.
func (g *Graph) Count() int { return len(g.all) }

// Paths returns every registered path in sorted order.
func (g *Graph) Paths() []string {
	out := make([]string, 0, len(g.all))
	for p := range g.all {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// All returns every registered entity in path order.
func (g *Graph) All() []*Entity {
	out := make([]*Entity, 0, len(g.all))
	for _, p := range g.Paths() {
		out = append(out, g.all[p])
	}
	return out
}
