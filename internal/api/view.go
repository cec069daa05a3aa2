package api

import "github.com/docgraph-labs/docgraph/internal/graph"

// entityView is the JSON projection of a graph entity.
type entityView struct {
	Path       string     `json:"path"`
	Name       string     `json:"name"`
	Kind       string     `json:"kind"`
	Namespace  string     `json:"namespace,omitempty"`
	Visibility string     `json:"visibility,omitempty"`
	Scope      string     `json:"scope,omitempty"`
	Dynamic    bool       `json:"dynamic,omitempty"`
	Group      string     `json:"group,omitempty"`
	Docstring  string     `json:"docstring,omitempty"`
	Tags       []tagView  `json:"tags,omitempty"`
	Files      []fileView `json:"files,omitempty"`
	Superclass string     `json:"superclass,omitempty"`
	Mixins     []string   `json:"mixins,omitempty"`
	Groups     []string   `json:"groups,omitempty"`
	Signature  string     `json:"signature,omitempty"`
}

type tagView struct {
	Name string `json:"name"`
	Text string `json:"text,omitempty"`
}

type fileView struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

func viewOf(e *graph.Entity) entityView {
	v := entityView{
		Path:       e.Path(),
		Name:       e.Name,
		Kind:       string(e.Kind),
		Visibility: string(e.Visibility),
		Scope:      string(e.Scope),
		Dynamic:    e.Dynamic,
		Group:      e.Group,
		Groups:     e.GroupNames(),
		Signature:  e.Signature,
	}
	if ns := e.Namespace(); ns != nil && !ns.IsRoot() {
		v.Namespace = ns.Path()
	}
	if e.Superclass != nil {
		v.Superclass = e.Superclass.Path()
	}
	for _, m := range e.Mixins {
		v.Mixins = append(v.Mixins, m.Path())
	}
	if e.Docstring != nil {
		v.Docstring = e.Docstring.Text
		for _, t := range e.Docstring.Tags {
			v.Tags = append(v.Tags, tagView{Name: t.Name, Text: t.Text})
		}
	}
	for _, f := range e.Files {
		v.Files = append(v.Files, fileView{File: f.File, Line: f.Line})
	}
	return v
}
