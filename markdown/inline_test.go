package markdown

import (
	"testing"
)

func hasMark(n Node, mt MarkType) bool {
	for _, m := range n.Marks {
		if m.Type == mt {
			return true
		}
	}
	return false
}

func TestInlineBold(t *testing.T) {
	nodes := parseInline("plain **bold** plain")
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if nodes[0].Content != "plain " || len(nodes[0].Marks) != 0 {
		t.Errorf("node 0 = %q marks %v", nodes[0].Content, nodes[0].Marks)
	}
	if nodes[1].Content != "bold" || !hasMark(nodes[1], MarkBold) {
		t.Errorf("node 1 = %q marks %v", nodes[1].Content, nodes[1].Marks)
	}
	if nodes[2].Content != " plain" {
		t.Errorf("node 2 = %q", nodes[2].Content)
	}
}

func TestInlineItalic(t *testing.T) {
	for _, input := range []string{"*italic*", "_italic_"} {
		nodes := parseInline(input)
		if len(nodes) != 1 {
			t.Fatalf("parseInline(%q) = %d nodes, want 1", input, len(nodes))
		}
		if nodes[0].Content != "italic" || !hasMark(nodes[0], MarkItalic) {
			t.Errorf("parseInline(%q) = %q marks %v", input, nodes[0].Content, nodes[0].Marks)
		}
	}
}

func TestInlineCode(t *testing.T) {
	nodes := parseInline("run `go vet` now")
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if nodes[1].Content != "go vet" || !hasMark(nodes[1], MarkCode) {
		t.Errorf("code span = %q marks %v", nodes[1].Content, nodes[1].Marks)
	}
}

func TestInlineCodeIsLiteral(t *testing.T) {
	// No formatting inside code spans.
	nodes := parseInline("`**not bold**`")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].Content != "**not bold**" {
		t.Errorf("content = %q", nodes[0].Content)
	}
	if !hasMark(nodes[0], MarkCode) || hasMark(nodes[0], MarkBold) {
		t.Errorf("marks = %v", nodes[0].Marks)
	}
}

func TestInlineLink(t *testing.T) {
	nodes := parseInline("see [the docs](https://example.com) here")
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	link := nodes[1]
	if link.Content != "the docs" {
		t.Errorf("label = %q", link.Content)
	}
	found := false
	for _, m := range link.Marks {
		if m.Type == MarkLink && m.Href == "https://example.com" {
			found = true
		}
	}
	if !found {
		t.Errorf("link mark missing, marks = %v", link.Marks)
	}
}

func TestInlineImage(t *testing.T) {
	nodes := parseInline("![diagram](https://example.com/d.png)")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].Type != NodeImage || nodes[0].Alt != "diagram" {
		t.Errorf("node = %+v", nodes[0])
	}
}

func TestInlineNestedMarks(t *testing.T) {
	nodes := parseInline("**bold *both* tail**")
	var both *Node
	for i := range nodes {
		if hasMark(nodes[i], MarkBold) && hasMark(nodes[i], MarkItalic) {
			both = &nodes[i]
		}
	}
	if both == nil {
		t.Fatal("no node carries both bold and italic")
	}
	if both.Content != "both" {
		t.Errorf("content = %q, want both", both.Content)
	}
}

func TestInlineUnterminatedFallsBackToLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed bold", "**bold without close"},
		{"unclosed code", "`tick without close"},
		{"unclosed link", "[label](no close"},
		{"empty bold", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := parseInline(tt.input)
			got := ""
			for _, n := range nodes {
				if len(n.Marks) != 0 {
					t.Errorf("unexpected marks %v on %q", n.Marks, n.Content)
				}
				got += n.Content
			}
			if got != tt.input {
				t.Errorf("flattened = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestInlineSnakeCaseNotItalic(t *testing.T) {
	nodes := parseInline("use snake_case_names here")
	for _, n := range nodes {
		if hasMark(n, MarkItalic) {
			t.Fatalf("snake_case produced italic: %+v", nodes)
		}
	}
}

func TestInlineMarkIsolationBetweenSiblings(t *testing.T) {
	// Sibling spans must not leak marks into each other.
	nodes := parseInline("**a** then *b*")
	for _, n := range nodes {
		if n.Content == "a" && hasMark(n, MarkItalic) {
			t.Error("bold span leaked an italic mark")
		}
		if n.Content == "b" && hasMark(n, MarkBold) {
			t.Error("italic span leaked a bold mark")
		}
	}
}
