package graph

import (
	"sort"
	"strings"

	"github.com/docgraph-labs/docgraph/internal/docparse"
)

// Node is anything that can stand in a namespace position: a registered
// entity or an unresolved reference to one.
type Node interface {
	// Path returns the qualified name of the node.
	Path() string
	// IsRoot reports whether the node denotes the graph root.
	IsRoot() bool
}

// FileRef records one (file, line, comment) attachment. An entity reopened
// across files accumulates one FileRef per registration.
type FileRef struct {
	File    string
	Line    int
	Comment string
}

// Entity is a named node in the documentation graph: a namespace (module,
// class) or a leaf (method, constant).
//
// The namespace field holds the parent namespace and may temporarily be an
// unresolved *Reference until the resolution engine finds the real parent.
type Entity struct {
	Kind Kind
	Name string

	namespace Node

	Visibility Visibility
	Scope      Scope

	// Dynamic is true when the entity was registered while analysis was
	// inside a method or block body rather than directly inside a namespace.
	Dynamic bool

	Group     string
	Docstring *docparse.Docstring
	Files     []FileRef

	// Method-like entities only.
	Source         string
	SourceKind     string
	Signature      string
	ModuleFunction bool

	// Class entities only.
	Superclass Node

	Mixins []Node

	children map[string]*Entity
	groups   map[string]bool
}

// NewEntity creates an entity of the given kind under ns. Namespaces are
// public; leaf entities start with no visibility so the registration
// pipeline can tell a caller-set value from an unset one.
func NewEntity(kind Kind, ns Node, name string) *Entity {
	e := &Entity{
		Kind:      kind,
		Name:      name,
		namespace: ns,
		Scope:     ScopeInstance,
	}
	if kind.NamespaceLike() {
		e.Visibility = VisibilityPublic
	}
	return e
}

// Path returns the qualified name: namespaces join with "::", instance
// methods attach with "#", class-scoped methods with ".".
func (e *Entity) Path() string {
	if e.Kind == KindRoot {
		return ""
	}
	prefix := ""
	if e.namespace != nil && !e.namespace.IsRoot() {
		prefix = e.namespace.Path()
	}
	switch {
	case e.Kind.MethodLike() && e.Scope == ScopeClass:
		return prefix + "." + e.Name
	case e.Kind.MethodLike():
		return prefix + "#" + e.Name
	case prefix == "":
		return e.Name
	default:
		return prefix + "::" + e.Name
	}
}

func (e *Entity) IsRoot() bool { return e.Kind == KindRoot }

// Namespace returns the parent namespace node, which may be an unresolved
// reference.
func (e *Entity) Namespace() Node { return e.namespace }

// SetNamespace replaces the parent namespace, normally to swap an unresolved
// reference for the real entity.
func (e *Entity) SetNamespace(ns Node) { e.namespace = ns }

// AddChild attaches a child to a namespace-like entity. Attaching the same
// name twice keeps the first entity (reopening semantics).
func (e *Entity) AddChild(c *Entity) *Entity {
	if !e.Kind.NamespaceLike() {
		return c
	}
	if e.children == nil {
		e.children = make(map[string]*Entity)
	}
	key := childKey(c)
	if existing, ok := e.children[key]; ok {
		return existing
	}
	e.children[key] = c
	return c
}

// Child returns the direct child with the given name (namespace or instance
// member), or nil.
func (e *Entity) Child(name string) *Entity {
	if c, ok := e.children[name]; ok {
		return c
	}
	// Method children are keyed by separator-prefixed name.
	if c, ok := e.children["#"+name]; ok {
		return c
	}
	if c, ok := e.children["."+name]; ok {
		return c
	}
	return nil
}

// Children returns all direct children sorted by path.
func (e *Entity) Children() []*Entity {
	out := make([]*Entity, 0, len(e.children))
	for _, c := range e.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path() < out[j].Path() })
	return out
}

func childKey(c *Entity) string {
	switch {
	case c.Kind.MethodLike() && c.Scope == ScopeClass:
		return "." + c.Name
	case c.Kind.MethodLike():
		return "#" + c.Name
	default:
		return c.Name
	}
}

// AddFile appends a (file, line, comment) attachment. Attachments are
// additive: reopening an entity in another file never discards earlier ones.
func (e *Entity) AddFile(file string, line int, comment string) {
	e.Files = append(e.Files, FileRef{File: file, Line: line, Comment: comment})
}

// HasTag reports whether the entity's docstring defines the tag locally.
func (e *Entity) HasTag(name string) bool {
	return e.Docstring != nil && e.Docstring.HasTag(name)
}

// Tag returns the entity's local tag with the given name, or nil.
func (e *Entity) Tag(name string) *docparse.Tag {
	if e.Docstring == nil {
		return nil
	}
	return e.Docstring.Tag(name)
}

// AddTag attaches a tag to the entity's docstring, creating an empty
// docstring if registration has not produced one yet.
func (e *Entity) AddTag(t *docparse.Tag) {
	if e.Docstring == nil {
		e.Docstring = &docparse.Docstring{}
	}
	e.Docstring.AddTag(t)
}

// AddGroupName records a documentation group seen among this namespace's
// members.
func (e *Entity) AddGroupName(name string) {
	if e.groups == nil {
		e.groups = make(map[string]bool)
	}
	e.groups[name] = true
}

// GroupNames returns the documentation groups recorded on this namespace.
func (e *Entity) GroupNames() []string {
	out := make([]string, 0, len(e.groups))
	for g := range e.groups {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// CopyTo copies all value fields of e onto dst. Children are not copied;
// dst keeps its own identity in the graph.
func (e *Entity) CopyTo(dst *Entity) {
	dst.Kind = e.Kind
	dst.Name = e.Name
	dst.Visibility = e.Visibility
	dst.Scope = e.Scope
	dst.Dynamic = e.Dynamic
	dst.Group = e.Group
	dst.Source = e.Source
	dst.SourceKind = e.SourceKind
	dst.Signature = e.Signature
	dst.ModuleFunction = e.ModuleFunction
	dst.Superclass = e.Superclass
	dst.Mixins = append([]Node(nil), e.Mixins...)
	dst.Files = append([]FileRef(nil), e.Files...)
	if e.Docstring != nil {
		ds := *e.Docstring
		ds.Tags = append([]*docparse.Tag(nil), e.Docstring.Tags...)
		dst.Docstring = &ds
	}
}

// Title is a short human-readable label for diagnostics.
func (e *Entity) Title() string {
	if e.IsRoot() {
		return "root"
	}
	return string(e.Kind) + " " + e.Path()
}

func (e *Entity) String() string { return e.Title() }

// SplitPath splits a qualified name on "::", "#" and "." separators.
func SplitPath(path string) []string {
	path = strings.ReplaceAll(path, "#", "::")
	path = strings.ReplaceAll(path, ".", "::")
	parts := strings.Split(path, "::")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
