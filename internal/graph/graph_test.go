package graph

import "testing"

func TestEntityPath(t *testing.T) {
	g := New()
	foo := g.Register(NewEntity(KindModule, g.Root(), "Foo"))
	bar := g.Register(NewEntity(KindClass, foo, "Bar"))

	im := NewEntity(KindMethod, bar, "baz")
	cm := NewEntity(KindMethod, bar, "baz")
	cm.Scope = ScopeClass
	konst := NewEntity(KindConstant, bar, "MAX")

	tests := []struct {
		ent  *Entity
		want string
	}{
		{foo, "Foo"},
		{bar, "Foo::Bar"},
		{im, "Foo::Bar#baz"},
		{cm, "Foo::Bar.baz"},
		{konst, "Foo::Bar::MAX"},
	}
	for _, tt := range tests {
		if got := tt.ent.Path(); got != tt.want {
			t.Errorf("Path() = %q, want %q", got, tt.want)
		}
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	g := New()
	first := g.Register(NewEntity(KindClass, g.Root(), "Foo"))
	second := g.Register(NewEntity(KindClass, g.Root(), "Foo"))

	if first != second {
		t.Error("registering the same path twice should return the first entity")
	}
	if g.Count() != 1 {
		t.Errorf("Count() = %d, want 1", g.Count())
	}
}

func TestChildLookupAcrossMemberKinds(t *testing.T) {
	g := New()
	foo := g.Register(NewEntity(KindClass, g.Root(), "Foo"))
	m := NewEntity(KindMethod, foo, "bar")
	g.Register(m)

	if got := foo.Child("bar"); got != m {
		t.Error("Child should find instance methods by bare name")
	}
	if got := g.At(g.Root(), "Foo::bar"); got != m {
		t.Error("At should reach methods as the final path segment")
	}
	if got := g.At(foo, "bar"); got != m {
		t.Error("At(foo, bar) should find the method")
	}
}

func TestAtMultiSegment(t *testing.T) {
	g := New()
	a := g.Register(NewEntity(KindModule, g.Root(), "A"))
	b := g.Register(NewEntity(KindModule, a, "B"))
	c := g.Register(NewEntity(KindClass, b, "C"))

	if got := g.At(g.Root(), "A::B::C"); got != c {
		t.Errorf("At root A::B::C = %v", got)
	}
	if got := g.At(a, "B::C"); got != c {
		t.Errorf("At A B::C = %v", got)
	}
	if got := g.At(a, "Missing"); got != nil {
		t.Errorf("expected nil for missing child, got %v", got)
	}
}

func TestAddFileIsAdditive(t *testing.T) {
	e := NewEntity(KindMethod, nil, "m")
	e.AddFile("a.rb", 3, "first")
	e.AddFile("b.rb", 9, "second")

	if len(e.Files) != 2 {
		t.Fatalf("expected 2 file refs, got %d", len(e.Files))
	}
	if e.Files[0].File != "a.rb" || e.Files[1].File != "b.rb" {
		t.Errorf("file refs out of order: %+v", e.Files)
	}
}

func TestCopyTo(t *testing.T) {
	g := New()
	foo := g.Register(NewEntity(KindModule, g.Root(), "Foo"))

	src := NewEntity(KindMethod, foo, "m")
	src.Visibility = VisibilityPublic
	src.Source = "def m; end"
	src.ModuleFunction = true
	src.AddFile("a.rb", 1, "doc")

	dst := NewEntity(KindMethod, foo, "m")
	src.CopyTo(dst)

	if dst.Source != src.Source || dst.Visibility != src.Visibility {
		t.Error("CopyTo should copy value fields")
	}
	if len(dst.Files) != 1 {
		t.Errorf("CopyTo should copy file refs, got %d", len(dst.Files))
	}
	dst.AddFile("b.rb", 2, "")
	if len(src.Files) != 1 {
		t.Error("copied file refs must not alias the source slice")
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"A::B::C", []string{"A", "B", "C"}},
		{"A::B#m", []string{"A", "B", "m"}},
		{"A.b", []string{"A", "b"}},
		{"::A", []string{"A"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := SplitPath(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("SplitPath(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitPath(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestGroupNames(t *testing.T) {
	e := NewEntity(KindClass, nil, "Foo")
	e.AddGroupName("Setup")
	e.AddGroupName("Teardown")
	e.AddGroupName("Setup")

	got := e.GroupNames()
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %v", got)
	}
	if got[0] != "Setup" || got[1] != "Teardown" {
		t.Errorf("groups = %v", got)
	}
}
