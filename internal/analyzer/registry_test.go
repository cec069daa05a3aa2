package analyzer

import (
	"regexp"
	"testing"

	"github.com/docgraph-labs/docgraph/internal/graph"
	"github.com/docgraph-labs/docgraph/internal/statement"
)

func TestDescriptorMatchers(t *testing.T) {
	d := &Descriptor{
		Name:     "mixed",
		Kinds:    []string{"class"},
		Prefixes: []string{"include "},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`^attr_\w+`)},
	}

	tests := []struct {
		kind string
		text string
		want bool
	}{
		{"class", "class Foo", true},
		{"call", "include Bar", true},
		{"call", "attr_reader :x", true},
		{"call", "puts 'hi'", false},
		{"module", "module Foo", false},
		{"call", "included_thing", false},
	}
	for _, tt := range tests {
		st := &statement.Statement{Kind: tt.kind, Text: tt.text}
		if got := d.Matches(st); got != tt.want {
			t.Errorf("Matches(%s %q) = %v, want %v", tt.kind, tt.text, got, tt.want)
		}
	}
}

func TestAppliesToNamespaceOnly(t *testing.T) {
	g := graph.New()
	pc := NewContext(g.Root())
	d := &Descriptor{Name: "ns-only", Kinds: []string{"call"}, NamespaceOnly: true}
	st := &statement.Statement{Kind: "call", Text: "private"}

	if !d.AppliesTo(st, pc, "a.rb") {
		t.Error("should apply when owner == namespace")
	}

	meth := graph.NewEntity(graph.KindMethod, g.Root(), "m")
	_ = pc.WithScope(ScopeOverride{Owner: meth}, func() error {
		if d.AppliesTo(st, pc, "a.rb") {
			t.Error("should not apply inside a method body")
		}
		return nil
	})
}

func TestAppliesToFileRestriction(t *testing.T) {
	g := graph.New()
	pc := NewContext(g.Root())
	st := &statement.Statement{Kind: "call", Text: "x"}

	tests := []struct {
		files    []string
		filename string
		want     bool
	}{
		{nil, "lib/anything.rb", true},
		{[]string{"widget.rb"}, "lib/widget.rb", true},
		{[]string{"widget.rb"}, "lib/other.rb", false},
		{[]string{"*_spec.rb"}, "spec/thing_spec.rb", true},
		{[]string{"*_spec.rb"}, "lib/thing.rb", false},
	}
	for _, tt := range tests {
		d := &Descriptor{Name: "restricted", Kinds: []string{"call"}, Files: tt.files}
		if got := d.AppliesTo(st, pc, tt.filename); got != tt.want {
			t.Errorf("AppliesTo(files=%v, %q) = %v, want %v", tt.files, tt.filename, got, tt.want)
		}
	}
}

func TestRegistryDeclarationOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"one", "two", "three"} {
		reg.Declare(&Descriptor{Name: name})
	}

	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("len = %d", len(all))
	}
	for i, want := range []string{"one", "two", "three"} {
		if all[i].Name != want {
			t.Errorf("all[%d] = %s, want %s", i, all[i].Name, want)
		}
	}
}
