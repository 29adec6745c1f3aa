package adf

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderBasicDocument(t *testing.T) {
	doc := NewDocument()
	doc.AddHeading(2, "Overview")
	doc.Content = append(doc.Content, Node{
		Type:    NodeParagraph,
		Content: []Node{{Type: NodeText, Text: "plain "}, Bold("bold")},
	})
	doc.AddBulletList([]string{"one", "two"})

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{"## Overview", "plain **bold**", "- one", "- two"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderBuilderHelpers(t *testing.T) {
	doc := NewDocument()
	doc.AddParagraph("release notes")
	doc.AddRule()
	doc.Content = append(doc.Content, Node{
		Type:    NodeParagraph,
		Content: []Node{Italic("emphasis"), {Type: NodeText, Text: " and "}, Code("inline")},
	})

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{"release notes", "---", "*emphasis* and `inline`"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCodeBlock(t *testing.T) {
	doc := NewDocument()
	doc.AddCodeBlock("func main() {}", "go")

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "```go\nfunc main() {}\n```") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderOrderedListNumbers(t *testing.T) {
	doc := NewDocument()
	doc.AddOrderedList([]string{"first", "second"})

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "1. first") || !strings.Contains(out, "2. second") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderLink(t *testing.T) {
	doc := NewDocument()
	doc.Content = append(doc.Content, Node{
		Type:    NodeParagraph,
		Content: []Node{Link("docs", "https://example.com")},
	})

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "[docs](https://example.com)") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderInvalidDocument(t *testing.T) {
	doc := &Document{Version: 2, Type: NodeDoc}
	if _, err := Render(doc); !errors.Is(err, ErrVersionInvalid) {
		t.Errorf("err = %v, want ErrVersionInvalid", err)
	}

	doc = &Document{Version: 1, Type: "page"}
	if _, err := Render(doc); !errors.Is(err, ErrRootTypeInvalid) {
		t.Errorf("err = %v, want ErrRootTypeInvalid", err)
	}
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"plain string", "already text", "already text"},
		{
			"adf map",
			map[string]any{
				"version": 1,
				"type":    "doc",
				"content": []any{
					map[string]any{
						"type": "paragraph",
						"content": []any{
							map[string]any{"type": "text", "text": "hello"},
						},
					},
				},
			},
			"hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.input)
			if err != nil {
				t.Fatalf("FromAny: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	input := "# Title\n\nSome **bold** text.\n\n- item one\n- item two"
	doc, err := FromMarkdown(input)
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != input {
		t.Errorf("round trip changed text:\n got %q\nwant %q", out, input)
	}
}
