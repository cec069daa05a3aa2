package handlers

import (
	"strings"

	"github.com/docgraph-labs/docgraph/internal/analyzer"
	"github.com/docgraph-labs/docgraph/internal/graph"
)

// VisibilityHandler handles public/protected/private modifiers. The bare
// form changes the ambient visibility for statements that follow; the named
// form updates the listed methods in place.
type VisibilityHandler struct{}

func (h *VisibilityHandler) Process(c *analyzer.Call) error {
	vis := graph.Visibility(strings.Fields(c.Statement.Text)[0])

	names := symbolArgs(c.Statement.Text)
	if len(names) == 0 {
		c.Context.Visibility = vis
		return nil
	}

	for _, name := range names {
		if m := c.Graph().At(c.Context.Namespace, name); m != nil {
			m.Visibility = vis
		}
	}
	return nil
}

// MixinHandler handles include/extend with module arguments. The referenced
// modules go through the resolution engine, so a mixin naming a module
// declared later in another file defers and retries before giving up.
type MixinHandler struct{}

func (h *MixinHandler) Process(c *analyzer.Call) error {
	ns, ok := c.Context.Namespace.(*graph.Entity)
	if !ok {
		return analyzer.Abort("mixin outside a concrete namespace")
	}

	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(c.Statement.Text, "include"), "extend"))
	names := constArgs(text)
	if len(names) == 0 {
		return analyzer.Abort("mixin call names no modules")
	}

	for _, name := range names {
		mod, err := c.Resolve(graph.NewReference(c.Context.Namespace, name))
		if err != nil {
			return err
		}
		if !hasMixin(ns, mod) {
			ns.Mixins = append(ns.Mixins, mod)
		}
	}
	return nil
}

func hasMixin(ns *graph.Entity, mod graph.Node) bool {
	for _, m := range ns.Mixins {
		if m.Path() == mod.Path() {
			return true
		}
	}
	return false
}

// ModuleFunctionHandler marks the named methods as module functions and
// re-registers them so the pipeline produces their namespace-scoped private
// siblings.
type ModuleFunctionHandler struct{}

func (h *ModuleFunctionHandler) Process(c *analyzer.Call) error {
	names := symbolArgs(c.Statement.Text)
	if len(names) == 0 {
		return analyzer.Abort("module_function without method arguments")
	}

	for _, name := range names {
		m := c.Graph().At(c.Context.Namespace, name)
		if m == nil || !m.Kind.MethodLike() {
			return analyzer.Abort("module_function names an unknown method: " + name)
		}
		m.ModuleFunction = true
		if _, err := c.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// AttributeHandler handles attr_reader/attr_writer/attr_accessor, producing
// reader and/or writer method entities per attribute name.
type AttributeHandler struct{}

func (h *AttributeHandler) Process(c *analyzer.Call) error {
	kind := attrCall.FindStringSubmatch(c.Statement.Text)
	names := symbolArgs(c.Statement.Text)
	if kind == nil || len(names) == 0 {
		return analyzer.Abort("attribute call names no attributes")
	}

	var ents []*graph.Entity
	for _, name := range names {
		if kind[1] == "reader" || kind[1] == "accessor" {
			r := c.NewMethod(name, c.Context.Scope)
			r.Signature = "def " + name
			ents = append(ents, r)
		}
		if kind[1] == "writer" || kind[1] == "accessor" {
			w := c.NewMethod(name+"=", c.Context.Scope)
			w.Signature = "def " + name + "=(value)"
			ents = append(ents, w)
		}
	}
	_, err := c.Register(ents...)
	return err
}

// GroupHandler handles @!group/@!endgroup directive comments, toggling the
// active documentation group in the transient state bag.
type GroupHandler struct{}

func (h *GroupHandler) Process(c *analyzer.Call) error {
	text := c.Statement.Text
	if strings.HasPrefix(text, "@!endgroup") {
		delete(c.Context.Extra, "group")
		return nil
	}

	if !strings.HasPrefix(text, "@!group") {
		return analyzer.Abort("comment is not a group directive")
	}
	name := strings.TrimSpace(strings.TrimPrefix(text, "@!group"))
	if name == "" {
		return analyzer.Abort("group directive without a name")
	}
	c.Context.Extra["group"] = name
	return nil
}
