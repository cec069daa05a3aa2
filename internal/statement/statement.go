// Package statement is the statement-source side of the analyzer: it turns
// source files into a flat-per-scope sequence of Statement values carrying
// position, leading text, the attached comment block, and the nested block
// statements the dispatcher may recurse into.
package statement

// Statement is one parsed source statement as seen by handler matchers: its
// position, syntactic kind, leading text, and the raw comment block that
// documents it.
type Statement struct {
	File string
	Line int

	// Kind is the grammar node type ("class", "module", "method",
	// "singleton_method", "assignment", "call", "comment").
	Kind string

	// Text is the first source line of the statement, trimmed. Matchers run
	// prefix and pattern checks against it.
	Text string

	// Source is the full source text of the statement including its block.
	Source string

	// Comments holds the raw comment lines attached above the statement,
	// with comment markers stripped.
	Comments []string

	// HashFlag is true when the comment block used the reserved double-hash
	// convention.
	HashFlag bool

	// CommentsRange is the [start, end] line span of the comment block.
	CommentsRange [2]int

	// Block holds the statements nested inside this one, if any.
	Block []*Statement
}

// HasBlock reports whether the statement carries nested statements.
func (s *Statement) HasBlock() bool { return len(s.Block) > 0 }

// CommentText joins the attached comment lines into the raw text handed to
// the docstring grammar.
func (s *Statement) CommentText() string {
	if len(s.Comments) == 0 {
		return ""
	}
	text := s.Comments[0]
	for _, line := range s.Comments[1:] {
		text += "\n" + line
	}
	return text
}

// File groups the top-level statements of one source file.
type File struct {
	Path       string
	Statements []*Statement
}
