package analyzer

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/docgraph-labs/docgraph/internal/statement"
)

// Descriptor is the static declaration of one handler variant: its identity,
// the statements it matches, and its applicability restrictions. Descriptors
// are declared once at setup time and immutable afterwards.
type Descriptor struct {
	// Name identifies the variant in logs and contract errors.
	Name string

	// Kinds match the statement kind exactly.
	Kinds []string

	// Prefixes match literally against the statement's leading text.
	Prefixes []string

	// Patterns match against the statement's leading text.
	Patterns []*regexp.Regexp

	// NamespaceOnly restricts the handler to statements encountered directly
	// inside a namespace (owner == namespace).
	NamespaceOnly bool

	// Files restricts the handler to files whose basename equals, or matches
	// as a glob pattern, one of the entries. Empty means all files.
	Files []string

	// New creates a fresh handler instance per invocation.
	New func() Handler
}

// Matches reports whether at least one of the descriptor's matchers accepts
// the statement. Matcher kinds coexist: a descriptor may mix exact kinds,
// literal prefixes, and patterns.
func (d *Descriptor) Matches(st *statement.Statement) bool {
	for _, k := range d.Kinds {
		if st.Kind == k {
			return true
		}
	}
	for _, p := range d.Prefixes {
		if strings.HasPrefix(st.Text, p) {
			return true
		}
	}
	for _, re := range d.Patterns {
		if re.MatchString(st.Text) {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the handler should run for the statement under
// the given context and file.
func (d *Descriptor) AppliesTo(st *statement.Statement, c *Context, filename string) bool {
	if !d.Matches(st) {
		return false
	}
	if d.NamespaceOnly && !c.InNamespace() {
		return false
	}
	if len(d.Files) == 0 {
		return true
	}
	base := filepath.Base(filename)
	for _, f := range d.Files {
		if f == base {
			return true
		}
		if ok, err := path.Match(f, base); err == nil && ok {
			return true
		}
	}
	return false
}

// Registry holds the declared handler variants in declaration order. It is
// populated once by the driver before processing starts; handlers register
// explicitly through Declare rather than as a side effect of their
// definition.
type Registry struct {
	descriptors []*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Declare registers a handler variant. Declaration order is dispatch order.
func (r *Registry) Declare(d *Descriptor) {
	r.descriptors = append(r.descriptors, d)
}

// All returns every declared variant in declaration order.
func (r *Registry) All() []*Descriptor {
	return r.descriptors
}
