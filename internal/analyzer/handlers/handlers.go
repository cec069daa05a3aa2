// Package handlers declares the construct-specific handler variants driven
// by the analyzer core: namespaces, methods, constants, visibility and
// mixin modifiers, attributes, and documentation-group directives.
//
// Handlers are declared explicitly through DeclareAll at driver setup;
// nothing registers itself as a side effect of being defined.
package handlers

import (
	"regexp"

	"github.com/docgraph-labs/docgraph/internal/analyzer"
)

// DeclareAll declares every built-in handler variant on reg, in dispatch
// order.
func DeclareAll(reg *analyzer.Registry) {
	reg.Declare(&analyzer.Descriptor{
		Name:  "module",
		Kinds: []string{"module"},
		New:   func() analyzer.Handler { return &ModuleHandler{} },
	})
	reg.Declare(&analyzer.Descriptor{
		Name:  "class",
		Kinds: []string{"class"},
		New:   func() analyzer.Handler { return &ClassHandler{} },
	})
	reg.Declare(&analyzer.Descriptor{
		Name:  "method",
		Kinds: []string{"method", "singleton_method"},
		New:   func() analyzer.Handler { return &MethodHandler{} },
	})
	// Matcher kinds are OR-ed: a descriptor that also listed a bare Kind
	// would fire its handler on every statement of that kind, so the
	// text-discriminated handlers below declare prefixes or patterns only.
	reg.Declare(&analyzer.Descriptor{
		Name:     "constant",
		Patterns: []*regexp.Regexp{constantAssign},
		New:      func() analyzer.Handler { return &ConstantHandler{} },
	})
	reg.Declare(&analyzer.Descriptor{
		Name:          "visibility",
		Patterns:      []*regexp.Regexp{visibilityCall},
		NamespaceOnly: true,
		New:           func() analyzer.Handler { return &VisibilityHandler{} },
	})
	reg.Declare(&analyzer.Descriptor{
		Name:          "mixin",
		Prefixes:      []string{"include ", "extend "},
		NamespaceOnly: true,
		New:           func() analyzer.Handler { return &MixinHandler{} },
	})
	reg.Declare(&analyzer.Descriptor{
		Name:          "module_function",
		Prefixes:      []string{"module_function"},
		NamespaceOnly: true,
		New:           func() analyzer.Handler { return &ModuleFunctionHandler{} },
	})
	reg.Declare(&analyzer.Descriptor{
		Name:          "attribute",
		Patterns:      []*regexp.Regexp{attrCall},
		NamespaceOnly: true,
		New:           func() analyzer.Handler { return &AttributeHandler{} },
	})
	reg.Declare(&analyzer.Descriptor{
		Name:          "group",
		Prefixes:      []string{"@!group", "@!endgroup"},
		NamespaceOnly: true,
		New:           func() analyzer.Handler { return &GroupHandler{} },
	})
}

var (
	constantAssign = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*\s*=[^=~]`)
	visibilityCall = regexp.MustCompile(`^(public|protected|private)\b`)
	attrCall       = regexp.MustCompile(`^attr_(reader|writer|accessor)\b`)

	symbolArg = regexp.MustCompile(`:([A-Za-z_]\w*[?!=]?)`)
	constArg  = regexp.MustCompile(`\b((?:::)?[A-Z]\w*(?:::[A-Z]\w*)*)`)
)

// symbolArgs extracts :symbol arguments from a call statement's text.
func symbolArgs(text string) []string {
	var out []string
	for _, m := range symbolArg.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// constArgs extracts constant-path arguments ("Foo", "Foo::Bar", "::Baz")
// from a call statement's text after its method name.
func constArgs(text string) []string {
	var out []string
	for _, m := range constArg.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}
