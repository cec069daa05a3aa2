package analyzer

import (
	"errors"
	"testing"

	"github.com/docgraph-labs/docgraph/internal/graph"
)

func testContext() (*graph.Graph, *Context) {
	g := graph.New()
	return g, NewContext(g.Root())
}

func snapshot(c *Context) [4]any {
	return [4]any{c.Namespace, c.Owner, c.Visibility, c.Scope}
}

func TestWithScopeRestoresOnEveryExitPath(t *testing.T) {
	g, pc := testContext()
	ns := g.Register(graph.NewEntity(graph.KindClass, g.Root(), "Foo"))

	tests := []struct {
		name string
		body func() error
	}{
		{"normal return", func() error { return nil }},
		{"abort", func() error { return Abort("nothing to do") }},
		{"failure", func() error { return errors.New("boom") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := snapshot(pc)
			_ = pc.WithScope(ScopeOverride{Namespace: ns, Visibility: graph.VisibilityPrivate}, tt.body)
			if snapshot(pc) != before {
				t.Errorf("context not restored: %v != %v", snapshot(pc), before)
			}
		})
	}
}

func TestWithScopeDefaults(t *testing.T) {
	g, pc := testContext()
	ns := g.Register(graph.NewEntity(graph.KindClass, g.Root(), "Foo"))
	meth := graph.NewEntity(graph.KindMethod, ns, "m")

	// Visibility and scope reset on push; owner follows the new namespace.
	pc.Visibility = graph.VisibilityPrivate
	pc.Scope = graph.ScopeClass

	err := pc.WithScope(ScopeOverride{Namespace: ns}, func() error {
		if pc.Namespace != ns {
			t.Errorf("namespace = %v", pc.Namespace)
		}
		if pc.Owner != ns {
			t.Errorf("owner should default to the new namespace, got %v", pc.Owner)
		}
		if pc.Visibility != graph.VisibilityPublic {
			t.Errorf("visibility should default to public, got %v", pc.Visibility)
		}
		if pc.Scope != graph.ScopeInstance {
			t.Errorf("scope should default to instance, got %v", pc.Scope)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// An explicit owner override nests deeper than the namespace.
	err = pc.WithScope(ScopeOverride{Namespace: ns, Owner: meth}, func() error {
		if pc.Owner != meth {
			t.Errorf("owner = %v, want method", pc.Owner)
		}
		if pc.InNamespace() {
			t.Error("InNamespace should be false when owner != namespace")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestWithScopeNested(t *testing.T) {
	g, pc := testContext()
	a := g.Register(graph.NewEntity(graph.KindModule, g.Root(), "A"))
	b := g.Register(graph.NewEntity(graph.KindModule, a, "B"))

	err := pc.WithScope(ScopeOverride{Namespace: a}, func() error {
		return pc.WithScope(ScopeOverride{Namespace: b}, func() error {
			if pc.Namespace != b {
				t.Errorf("inner namespace = %v", pc.Namespace)
			}
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if pc.Namespace != g.Root() {
		t.Errorf("outer context not restored, namespace = %v", pc.Namespace)
	}
}

func TestWithScopeReturnsBodyError(t *testing.T) {
	_, pc := testContext()
	want := errors.New("boom")
	if got := pc.WithScope(ScopeOverride{}, func() error { return want }); !errors.Is(got, want) {
		t.Errorf("got %v, want body error", got)
	}
}
