package adf

import (
	"fmt"

	"github.com/mwhitfield/jiractl/markdown"
)

// UnsupportedConstructError reports a markdown construct that Jira's API
// rejects. Conversion of the whole field aborts rather than submitting a
// request guaranteed to fail server-side.
type UnsupportedConstructError struct {
	Construct string
	Line      int
	Hint      string
}

func (e *UnsupportedConstructError) Error() string {
	msg := fmt.Sprintf("unsupported markdown construct: %s", e.Construct)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// FromMarkdown converts markdown text to an ADF document. Empty input
// produces an empty document.
func FromMarkdown(text string) (*Document, error) {
	return Convert(markdown.Parse(text))
}

// Convert maps a markdown node tree to an ADF document. Each markdown node
// becomes exactly one ADF subtree, with three deliberate exceptions:
// blockquotes are rejected with UnsupportedConstructError, images are
// down-converted to a "[Image: alt]" text placeholder, and task items become
// plain bullet items with a literal checkbox prefix. Pure tree transform:
// no I/O, no retries, no shared state between calls.
func Convert(nodes []markdown.Node) (*Document, error) {
	doc := NewDocument()
	for _, n := range nodes {
		converted, err := convertBlock(n)
		if err != nil {
			return nil, err
		}
		doc.Content = append(doc.Content, converted)
	}
	return doc, nil
}

func convertBlock(n markdown.Node) (Node, error) {
	switch n.Type {
	case markdown.NodeParagraph:
		return Node{Type: NodeParagraph, Content: convertInline(n.Children)}, nil

	case markdown.NodeHeading:
		level := n.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return Node{
			Type:    NodeHeading,
			Attrs:   map[string]any{"level": level},
			Content: convertInline(n.Children),
		}, nil

	case markdown.NodeCodeBlock:
		node := Node{
			Type:    NodeCodeBlock,
			Content: []Node{{Type: NodeText, Text: n.Content}},
		}
		if n.Language != "" {
			node.Attrs = map[string]any{"language": n.Language}
		}
		return node, nil

	case markdown.NodeBulletList, markdown.NodeOrderedList:
		return convertList(n)

	case markdown.NodeHorizontalRule:
		return Node{Type: NodeRule}, nil

	case markdown.NodeBlockquote:
		return Node{}, &UnsupportedConstructError{
			Construct: "blockquote",
			Line:      n.Line,
			Hint:      "Jira's API rejects blockquote nodes; rewrite as a plain paragraph",
		}

	default:
		return Node{}, &UnsupportedConstructError{Construct: string(n.Type), Line: n.Line}
	}
}

func convertList(n markdown.Node) (Node, error) {
	listType := NodeBulletList
	if n.Type == markdown.NodeOrderedList {
		listType = NodeOrderedList
	}

	list := Node{Type: listType}
	for _, item := range n.Children {
		converted, err := convertListItem(item)
		if err != nil {
			return Node{}, err
		}
		list.Content = append(list.Content, converted)
	}
	return list, nil
}

func convertListItem(item markdown.Node) (Node, error) {
	if item.Type == markdown.NodeTaskItem {
		// The server does not reliably honor interactive taskItem nodes, so
		// task entries become ordinary items with a literal checkbox.
		box := "[ ] "
		if item.Checked {
			box = "[x] "
		}
		content := append([]Node{{Type: NodeText, Text: box}}, convertInline(item.Children)...)
		return Node{
			Type:    NodeListItem,
			Content: []Node{{Type: NodeParagraph, Content: content}},
		}, nil
	}

	out := Node{Type: NodeListItem}
	for _, child := range item.Children {
		converted, err := convertBlock(child)
		if err != nil {
			return Node{}, err
		}
		out.Content = append(out.Content, converted)
	}
	return out, nil
}

// convertInline maps inline markdown nodes to ADF text nodes. Marks compose:
// a bold+italic run becomes one text node carrying two mark entries. Mark
// arrays are only attached when non-empty.
func convertInline(nodes []markdown.Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n.Type {
		case markdown.NodeText:
			out = append(out, Node{Type: NodeText, Text: n.Content, Marks: convertMarks(n.Marks)})
		case markdown.NodeImage:
			out = append(out, Node{Type: NodeText, Text: fmt.Sprintf("[Image: %s]", n.Alt)})
		}
	}
	return out
}

func convertMarks(marks []markdown.Mark) []Mark {
	if len(marks) == 0 {
		return nil
	}
	out := make([]Mark, 0, len(marks))
	for _, m := range marks {
		switch m.Type {
		case markdown.MarkBold:
			out = append(out, Mark{Type: MarkStrong})
		case markdown.MarkItalic:
			out = append(out, Mark{Type: MarkEm})
		case markdown.MarkCode:
			out = append(out, Mark{Type: MarkCode})
		case markdown.MarkLink:
			out = append(out, Mark{Type: MarkLink, Attrs: map[string]any{"href": m.Href}})
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
