package statement

import (
	"strings"
	"testing"
)

const sample = `# Adds things together.
# @since 1.0
module Util
  VERSION = "1.0"

  def checksum(data)
    data.sum
  end
end

## flagged
class Widget < Base
  private

  def secret
  end
end

# standalone notes

# @!group Helpers
`

func parseSample(t *testing.T) *File {
	t.Helper()
	f, err := NewParser().Parse("sample.rb", []byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f
}

func findKind(stmts []*Statement, kind string) *Statement {
	for _, s := range stmts {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}

func TestParseTopLevelStatements(t *testing.T) {
	f := parseSample(t)

	mod := findKind(f.Statements, "module")
	if mod == nil {
		t.Fatal("module statement missing")
	}
	if mod.Text != "module Util" || mod.Line != 3 {
		t.Errorf("module = %q at line %d", mod.Text, mod.Line)
	}

	cls := findKind(f.Statements, "class")
	if cls == nil {
		t.Fatal("class statement missing")
	}
	if cls.Text != "class Widget < Base" {
		t.Errorf("class text = %q", cls.Text)
	}
}

func TestParseCommentAttachment(t *testing.T) {
	f := parseSample(t)

	mod := findKind(f.Statements, "module")
	if len(mod.Comments) != 2 {
		t.Fatalf("module comments = %v", mod.Comments)
	}
	if mod.Comments[0] != "Adds things together." || mod.Comments[1] != "@since 1.0" {
		t.Errorf("comment markers not stripped: %v", mod.Comments)
	}
	if mod.CommentsRange != [2]int{1, 2} {
		t.Errorf("comments range = %v", mod.CommentsRange)
	}
	if mod.HashFlag {
		t.Error("single-hash comment flagged as double-hash")
	}
	if mod.CommentText() != "Adds things together.\n@since 1.0" {
		t.Errorf("comment text = %q", mod.CommentText())
	}
}

func TestParseHashFlag(t *testing.T) {
	f := parseSample(t)

	cls := findKind(f.Statements, "class")
	if !cls.HashFlag {
		t.Error("double-hash comment did not set the flag")
	}
	if len(cls.Comments) != 1 || cls.Comments[0] != "flagged" {
		t.Errorf("class comments = %v", cls.Comments)
	}
}

func TestParseBlocks(t *testing.T) {
	f := parseSample(t)

	mod := findKind(f.Statements, "module")
	if !mod.HasBlock() {
		t.Fatal("module has no block")
	}
	if a := findKind(mod.Block, "assignment"); a == nil || a.Text != `VERSION = "1.0"` {
		t.Errorf("assignment = %v", a)
	}
	meth := findKind(mod.Block, "method")
	if meth == nil {
		t.Fatal("method missing from module block")
	}
	if meth.Text != "def checksum(data)" {
		t.Errorf("method text = %q, want first line only", meth.Text)
	}
	if !strings.Contains(meth.Source, "data.sum") {
		t.Errorf("method source = %q, want full body", meth.Source)
	}

	cls := findKind(f.Statements, "class")
	if bare := findKind(cls.Block, "call"); bare == nil || bare.Text != "private" {
		t.Errorf("bare visibility modifier = %v, want a call statement", bare)
	}
	if m := findKind(cls.Block, "method"); m == nil || m.Text != "def secret" {
		t.Errorf("class method = %v", m)
	}
}

func TestParseStandaloneComments(t *testing.T) {
	f := parseSample(t)

	var comments []*Statement
	for _, s := range f.Statements {
		if s.Kind == "comment" {
			comments = append(comments, s)
		}
	}
	// Two trailing blocks, separated by a blank line, not attached to any
	// statement.
	if len(comments) != 2 {
		t.Fatalf("standalone comments = %d: %+v", len(comments), comments)
	}
	if comments[0].Text != "standalone notes" {
		t.Errorf("first standalone = %q", comments[0].Text)
	}
	if comments[1].Text != "@!group Helpers" {
		t.Errorf("directive comment = %q", comments[1].Text)
	}
}

func TestParseDirectiveInsideDocComment(t *testing.T) {
	src := `class Client
  # Fetches a resource.
  # @!group Requests
  def get
  end
end
`
	f, err := NewParser().Parse("client.rb", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cls := findKind(f.Statements, "class")
	if cls == nil {
		t.Fatal("class statement missing")
	}

	// The directive is re-emitted as its own comment statement ahead of the
	// method it annotates.
	dir := findKind(cls.Block, "comment")
	if dir == nil {
		t.Fatal("absorbed directive not surfaced as a comment statement")
	}
	if dir.Text != "@!group Requests" {
		t.Errorf("directive text = %q", dir.Text)
	}

	meth := findKind(cls.Block, "method")
	if meth == nil {
		t.Fatal("method missing")
	}
	if len(meth.Comments) != 2 {
		t.Errorf("method comments = %v, doc block must stay attached", meth.Comments)
	}
	if dirIdx, methIdx := indexOf(cls.Block, dir), indexOf(cls.Block, meth); dirIdx > methIdx {
		t.Errorf("directive at %d dispatches after its method at %d", dirIdx, methIdx)
	}
}

func indexOf(stmts []*Statement, target *Statement) int {
	for i, s := range stmts {
		if s == target {
			return i
		}
	}
	return -1
}

func TestParseEmptySource(t *testing.T) {
	f, err := NewParser().Parse("empty.rb", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(f.Statements) != 0 {
		t.Errorf("statements = %v", f.Statements)
	}
	if f.Path != "empty.rb" {
		t.Errorf("path = %q", f.Path)
	}
}
