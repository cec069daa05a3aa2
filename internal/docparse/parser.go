// Package docparse turns raw source comment blocks into structured
// docstrings with tags. It is the documentation-grammar collaborator of the
// analysis core: the registration pipeline hands it the joined comment text
// of every entity and always gets a (possibly empty) docstring back.
package docparse

import (
	"log/slog"
	"regexp"
	"strings"
)

// transitiveTags are the tag names that propagate from a namespace onto its
// members unless the member defines the tag itself.
var transitiveTags = []string{"since", "api"}

var tagLine = regexp.MustCompile(`^@([a-z_!]+[a-z_]*)\s*(.*)$`)

// Parser parses raw comment text into docstrings. A single Parser is shared
// across an analysis run so @!macro definitions made in one file can be
// expanded in another.
type Parser struct {
	macros map[string]string
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	return &Parser{macros: make(map[string]string), logger: logger}
}

// Transitive returns the names of tags that propagate from a namespace to
// its members.
func (p *Parser) Transitive() []string {
	return transitiveTags
}

// Parse converts raw comment text into a structured docstring. objectPath
// names the entity the text documents and is used only for diagnostics.
// Empty input yields an empty, non-nil docstring.
func (p *Parser) Parse(raw string, objectPath string) *Docstring {
	ds := &Docstring{}
	if raw == "" {
		return ds
	}

	var prose []string
	lines := strings.Split(p.expandMacros(raw, objectPath), "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		m := tagLine.FindStringSubmatch(line)
		if m == nil {
			prose = append(prose, lines[i])
			continue
		}

		name, text := m[1], m[2]
		if strings.HasPrefix(name, "!") {
			// Directives (@!macro, @!group, ...) are consumed by handlers or
			// by expandMacros; they never become tags.
			continue
		}

		// A tag's text continues over following indented lines.
		for i+1 < len(lines) && isContinuation(lines[i+1]) {
			i++
			text += " " + strings.TrimSpace(lines[i])
		}
		ds.AddTag(&Tag{Name: name, Text: strings.TrimSpace(text)})
	}

	ds.Text = strings.TrimSpace(strings.Join(prose, "\n"))
	return ds
}

// expandMacros handles the @!macro directive: a line "@!macro name" followed
// by indented body lines defines a macro; a bare "@!macro name" with no body
// expands a previously defined one in place.
func (p *Parser) expandMacros(raw string, objectPath string) string {
	lines := strings.Split(raw, "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "@!macro") {
			out = append(out, lines[i])
			continue
		}

		name := strings.TrimSpace(strings.TrimPrefix(line, "@!macro"))
		if name == "" {
			continue
		}

		var body []string
		for i+1 < len(lines) && isContinuation(lines[i+1]) {
			i++
			body = append(body, strings.TrimSpace(lines[i]))
		}

		if len(body) > 0 {
			p.macros[name] = strings.Join(body, "\n")
			out = append(out, body...)
		} else if text, ok := p.macros[name]; ok {
			out = append(out, strings.Split(text, "\n")...)
		} else if p.logger != nil {
			p.logger.Debug("macro expansion of undefined macro",
				slog.String("macro", name),
				slog.String("object", objectPath))
		}
	}
	return strings.Join(out, "\n")
}

func isContinuation(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
