package markdown

import (
	"testing"
)

func TestParseHeadings(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantType  NodeType
		wantLevel int
		wantText  string
	}{
		{"h1", "# Title", NodeHeading, 1, "Title"},
		{"h3", "### Deep", NodeHeading, 3, "Deep"},
		{"h6", "###### Bottom", NodeHeading, 6, "Bottom"},
		{"no space is paragraph", "#Title", NodeParagraph, 0, "#Title"},
		{"seven hashes is paragraph", "####### Too deep", NodeParagraph, 0, "####### Too deep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Parse(tt.input)
			if len(nodes) != 1 {
				t.Fatalf("got %d nodes, want 1", len(nodes))
			}
			node := nodes[0]
			if node.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", node.Type, tt.wantType)
			}
			if node.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", node.Level, tt.wantLevel)
			}
			if got := plainText(node); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestParseParagraphJoining(t *testing.T) {
	nodes := Parse("first line\nsecond line\n\nnext paragraph")
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if got := plainText(nodes[0]); got != "first line second line" {
		t.Errorf("paragraph 1 = %q", got)
	}
	if got := plainText(nodes[1]); got != "next paragraph" {
		t.Errorf("paragraph 2 = %q", got)
	}
}

func TestParseCodeBlock(t *testing.T) {
	nodes := Parse("```go\nfunc main() {}\n**not bold**\n```")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	node := nodes[0]
	if node.Type != NodeCodeBlock {
		t.Fatalf("Type = %v, want %v", node.Type, NodeCodeBlock)
	}
	if node.Language != "go" {
		t.Errorf("Language = %q, want go", node.Language)
	}
	want := "func main() {}\n**not bold**"
	if node.Content != want {
		t.Errorf("Content = %q, want %q", node.Content, want)
	}
}

func TestParseUnterminatedCodeBlock(t *testing.T) {
	nodes := Parse("```\ncode runs\nto the end")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].Type != NodeCodeBlock {
		t.Fatalf("Type = %v, want %v", nodes[0].Type, NodeCodeBlock)
	}
	if nodes[0].Content != "code runs\nto the end" {
		t.Errorf("Content = %q", nodes[0].Content)
	}
}

func TestParseHorizontalRule(t *testing.T) {
	for _, input := range []string{"---", "***", "___", "-----"} {
		nodes := Parse(input)
		if len(nodes) != 1 || nodes[0].Type != NodeHorizontalRule {
			t.Errorf("Parse(%q) did not produce a rule", input)
		}
	}
	// Two dashes are just text.
	nodes := Parse("--")
	if len(nodes) != 1 || nodes[0].Type != NodeParagraph {
		t.Errorf("Parse(--) should be a paragraph")
	}
}

func TestParseBlockquote(t *testing.T) {
	nodes := Parse("> quoted line\n> continues here")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	node := nodes[0]
	if node.Type != NodeBlockquote {
		t.Fatalf("Type = %v, want %v", node.Type, NodeBlockquote)
	}
	if node.Line != 1 {
		t.Errorf("Line = %d, want 1", node.Line)
	}
	if got := plainText(node); got != "quoted line continues here" {
		t.Errorf("text = %q", got)
	}
}

func TestParseBulletList(t *testing.T) {
	nodes := Parse("- one\n- two\n* three")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	list := nodes[0]
	if list.Type != NodeBulletList {
		t.Fatalf("Type = %v, want %v", list.Type, NodeBulletList)
	}
	if len(list.Children) != 3 {
		t.Fatalf("got %d items, want 3", len(list.Children))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got := plainText(list.Children[i]); got != want {
			t.Errorf("item %d = %q, want %q", i, got, want)
		}
	}
}

func TestParseOrderedList(t *testing.T) {
	nodes := Parse("1. first\n2. second\n10. tenth")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	list := nodes[0]
	if list.Type != NodeOrderedList {
		t.Fatalf("Type = %v, want %v", list.Type, NodeOrderedList)
	}
	if len(list.Children) != 3 {
		t.Errorf("got %d items, want 3", len(list.Children))
	}
}

func TestParseNestedList(t *testing.T) {
	nodes := Parse("- parent\n  - child one\n  - child two\n- sibling")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	list := nodes[0]
	if len(list.Children) != 2 {
		t.Fatalf("got %d top items, want 2", len(list.Children))
	}

	parent := list.Children[0]
	var nested *Node
	for i := range parent.Children {
		if parent.Children[i].Type == NodeBulletList {
			nested = &parent.Children[i]
		}
	}
	if nested == nil {
		t.Fatal("no nested list under first item")
	}
	if len(nested.Children) != 2 {
		t.Errorf("got %d nested items, want 2", len(nested.Children))
	}
}

func TestParseNestedListFourSpaceIndent(t *testing.T) {
	// The smallest non-zero indent in the run defines one level.
	nodes := Parse("- parent\n    - child")
	list := nodes[0]
	if len(list.Children) != 1 {
		t.Fatalf("got %d top items, want 1", len(list.Children))
	}
	found := false
	for _, child := range list.Children[0].Children {
		if child.Type == NodeBulletList {
			found = true
		}
	}
	if !found {
		t.Error("four-space indent should nest one level deep")
	}
}

func TestParseNestedListMixedTabAndSpaceIndent(t *testing.T) {
	// A tab is one level on its own and does not shrink the space unit,
	// so a tab-indented item and a two-space item are siblings.
	nodes := Parse("- parent\n\t- tabbed\n  - spaced")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	list := nodes[0]
	if len(list.Children) != 1 {
		t.Fatalf("got %d top items, want 1", len(list.Children))
	}

	var nested *Node
	for i := range list.Children[0].Children {
		if list.Children[0].Children[i].Type == NodeBulletList {
			nested = &list.Children[0].Children[i]
		}
	}
	if nested == nil {
		t.Fatal("no nested list under first item")
	}
	if len(nested.Children) != 2 {
		t.Fatalf("got %d nested items, want 2", len(nested.Children))
	}
	if got := plainText(nested.Children[0]); got != "tabbed" {
		t.Errorf("nested item 0 = %q, want %q", got, "tabbed")
	}
	if got := plainText(nested.Children[1]); got != "spaced" {
		t.Errorf("nested item 1 = %q, want %q", got, "spaced")
	}
}

func TestParseTaskItems(t *testing.T) {
	nodes := Parse("- [ ] open task\n- [x] done task")
	list := nodes[0]
	if list.Type != NodeBulletList {
		t.Fatalf("Type = %v, want %v", list.Type, NodeBulletList)
	}
	if len(list.Children) != 2 {
		t.Fatalf("got %d items, want 2", len(list.Children))
	}
	if list.Children[0].Type != NodeTaskItem || list.Children[0].Checked {
		t.Errorf("item 0: Type=%v Checked=%v, want unchecked task", list.Children[0].Type, list.Children[0].Checked)
	}
	if list.Children[1].Type != NodeTaskItem || !list.Children[1].Checked {
		t.Errorf("item 1: Type=%v Checked=%v, want checked task", list.Children[1].Type, list.Children[1].Checked)
	}
}

func TestParseMixedDocument(t *testing.T) {
	input := "# Title\n\nSome **bold** text.\n\n- item one\n- item two"
	nodes := Parse(input)
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if nodes[0].Type != NodeHeading || nodes[0].Level != 1 {
		t.Errorf("node 0 = %v level %d", nodes[0].Type, nodes[0].Level)
	}
	if nodes[1].Type != NodeParagraph {
		t.Errorf("node 1 = %v, want paragraph", nodes[1].Type)
	}
	if nodes[2].Type != NodeBulletList || len(nodes[2].Children) != 2 {
		t.Errorf("node 2 = %v with %d children", nodes[2].Type, len(nodes[2].Children))
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n\n", "   \n  "} {
		if nodes := Parse(input); len(nodes) != 0 {
			t.Errorf("Parse(%q) = %d nodes, want 0", input, len(nodes))
		}
	}
}

// plainText flattens a node's inline content, ignoring marks.
func plainText(n Node) string {
	if n.Type == NodeText {
		return n.Content
	}
	out := ""
	for _, child := range n.Children {
		out += plainText(child)
	}
	return out
}
