package handlers

import (
	"regexp"

	"github.com/docgraph-labs/docgraph/internal/analyzer"
	"github.com/docgraph-labs/docgraph/internal/graph"
)

var (
	moduleDecl = regexp.MustCompile(`^module\s+((?:::)?[A-Z]\w*(?:::[A-Z]\w*)*)`)
	classDecl  = regexp.MustCompile(`^class\s+((?:::)?[A-Z]\w*(?:::[A-Z]\w*)*)(?:\s*<\s*((?:::)?[A-Z]\w*(?:::[A-Z]\w*)*))?`)
)

// ModuleHandler registers module declarations and continues analysis into
// their bodies under the new namespace.
type ModuleHandler struct{}

func (h *ModuleHandler) Process(c *analyzer.Call) error {
	m := moduleDecl.FindStringSubmatch(c.Statement.Text)
	if m == nil {
		return analyzer.Abort("statement has no module name")
	}

	mod := c.EnsureNamespace(graph.KindModule, m[1])
	if _, err := c.Register(mod); err != nil {
		return err
	}
	if !c.Statement.HasBlock() {
		return nil
	}
	return c.ParseBlock(analyzer.ScopeOverride{Namespace: mod})
}

// ClassHandler registers class declarations, recording the superclass as an
// unresolved reference when one is named, and continues analysis into the
// class body.
type ClassHandler struct{}

func (h *ClassHandler) Process(c *analyzer.Call) error {
	m := classDecl.FindStringSubmatch(c.Statement.Text)
	if m == nil {
		// "class << self" and friends are not class declarations.
		return analyzer.Abort("statement has no class name")
	}

	cls := c.EnsureNamespace(graph.KindClass, m[1])
	if cls.Kind == graph.KindModule {
		// Declared earlier as an implicit path segment; the class statement
		// is authoritative.
		cls.Kind = graph.KindClass
	}
	if m[2] != "" && cls.Superclass == nil {
		cls.Superclass = graph.NewReference(c.Context.Namespace, m[2])
	}

	if _, err := c.Register(cls); err != nil {
		return err
	}
	if !c.Statement.HasBlock() {
		return nil
	}
	return c.ParseBlock(analyzer.ScopeOverride{Namespace: cls})
}
