package statement

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

// Parser is the tree-sitter based Ruby statement frontend.
type Parser struct {
	ts *sitter.Parser
}

func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(ruby.GetLanguage())
	return &Parser{ts: p}
}

// statementKinds are the grammar node types surfaced as statements. Bare
// identifiers are included so visibility modifiers without arguments
// ("private") reach the dispatcher as calls.
var statementKinds = map[string]bool{
	"module":           true,
	"class":            true,
	"method":           true,
	"singleton_method": true,
	"assignment":       true,
	"call":             true,
	"command":          true,
	"command_call":     true,
	"identifier":       true,
}

// Parse parses one source file into its statement sequence.
func (p *Parser) Parse(path string, src []byte) (*File, error) {
	tree, err := p.ts.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	return &File{
		Path:       path,
		Statements: p.extract(tree.RootNode(), src, path),
	}, nil
}

// extract converts the named children of a scope node into statements,
// attaching each contiguous comment block to the statement that follows it.
// Comment blocks are also surfaced as their own statements so directive
// handlers (@!group) can see them.
func (p *Parser) extract(scope *sitter.Node, src []byte, path string) []*Statement {
	var stmts []*Statement
	var pending []string
	pendingStart, pendingEnd := 0, 0
	pendingHash := false

	flushComment := func() {
		if len(pending) == 0 {
			return
		}
		stmts = append(stmts, &Statement{
			File:          path,
			Line:          pendingStart,
			Kind:          "comment",
			Text:          strings.TrimSpace(pending[0]),
			Source:        strings.Join(pending, "\n"),
			Comments:      pending,
			HashFlag:      pendingHash,
			CommentsRange: [2]int{pendingStart, pendingEnd},
		})
		pending = nil
		pendingHash = false
	}

	for i := 0; i < int(scope.NamedChildCount()); i++ {
		node := scope.NamedChild(i)
		line := int(node.StartPoint().Row) + 1

		if node.Type() == "comment" {
			raw := node.Content(src)
			if len(pending) == 0 {
				pendingStart = line
				pendingHash = strings.HasPrefix(raw, "##")
			} else if line != pendingEnd+1 {
				flushComment()
				pendingStart = line
				pendingHash = strings.HasPrefix(raw, "##")
			}
			pending = append(pending, stripMarker(raw))
			pendingEnd = line
			continue
		}

		if !statementKinds[node.Type()] {
			flushComment()
			continue
		}

		st := &Statement{
			File:   path,
			Line:   line,
			Kind:   kindOf(node),
			Text:   firstLine(node.Content(src)),
			Source: node.Content(src),
		}

		// A comment block documents the statement only when contiguous with it.
		if len(pending) > 0 && pendingEnd == line-1 {
			flushComment()
			doc := stmts[len(stmts)-1]
			stmts = stmts[:len(stmts)-1]
			st.Comments = doc.Comments
			st.HashFlag = doc.HashFlag
			st.CommentsRange = doc.CommentsRange

			// Directive lines absorbed into a doc comment still need to
			// reach the dispatcher; re-emit each as its own comment
			// statement ahead of the statement it annotates.
			for i, c := range st.Comments {
				if d := strings.TrimSpace(c); strings.HasPrefix(d, "@!") {
					stmts = append(stmts, &Statement{
						File: path,
						Line: st.CommentsRange[0] + i,
						Kind: "comment",
						Text: d,
					})
				}
			}
		} else {
			flushComment()
		}

		if body := blockOf(node); body != nil {
			st.Block = p.extract(body, src, path)
		}

		stmts = append(stmts, st)
	}

	flushComment()
	return stmts
}

// kindOf normalizes grammar node types: bare identifiers and command calls
// both dispatch as calls.
func kindOf(node *sitter.Node) string {
	switch node.Type() {
	case "identifier", "command", "command_call":
		return "call"
	default:
		return node.Type()
	}
}

// blockOf returns the scope node holding a statement's nested statements.
func blockOf(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "body_statement":
			return child
		case "do_block", "block":
			// Calls with blocks ("included do ... end") nest their body one
			// level deeper.
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if inner := child.NamedChild(j); inner.Type() == "body_statement" {
					return inner
				}
			}
			return child
		}
	}
	return nil
}

func stripMarker(raw string) string {
	s := strings.TrimPrefix(raw, "##")
	s = strings.TrimPrefix(s, "#")
	return strings.TrimPrefix(s, " ")
}

func firstLine(src string) string {
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		src = src[:i]
	}
	return strings.TrimSpace(src)
}
