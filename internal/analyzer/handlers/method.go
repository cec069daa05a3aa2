package handlers

import (
	"regexp"
	"strings"

	"github.com/docgraph-labs/docgraph/internal/analyzer"
	"github.com/docgraph-labs/docgraph/internal/graph"
)

var methodDecl = regexp.MustCompile(`^def\s+([^\s(;]+)`)

// MethodHandler registers method definitions. Definitions encountered inside
// a method or block body register as dynamic; the handler still descends
// into the body (with the method as owner) so such nested definitions are
// found.
type MethodHandler struct{}

func (h *MethodHandler) Process(c *analyzer.Call) error {
	m := methodDecl.FindStringSubmatch(c.Statement.Text)
	if m == nil {
		return analyzer.Abort("statement has no method name")
	}

	name := m[1]
	scope := c.Context.Scope
	if c.Statement.Kind == "singleton_method" || strings.HasPrefix(name, "self.") {
		name = strings.TrimPrefix(name, "self.")
		scope = graph.ScopeClass
	}

	meth := c.NewMethod(name, scope)
	if _, err := c.Register(meth); err != nil {
		return err
	}
	if !c.Statement.HasBlock() {
		return nil
	}
	// Keep the namespace, shift the owner: entities defined in the body are
	// dynamic.
	return c.ParseBlock(analyzer.ScopeOverride{
		Namespace: c.Context.Namespace,
		Owner:     meth,
	})
}

// ConstantHandler registers constant assignments.
type ConstantHandler struct{}

func (h *ConstantHandler) Process(c *analyzer.Call) error {
	name, _, ok := strings.Cut(c.Statement.Text, "=")
	if !ok {
		return analyzer.Abort("assignment has no constant name")
	}

	k := c.NewConstant(strings.TrimSpace(name))
	_, err := c.Register(k)
	return err
}
