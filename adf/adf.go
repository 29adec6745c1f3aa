package adf

import "errors"

// Document is an Atlassian Document Format document, the rich-text shape
// Jira Cloud requires for description and comment fields.
type Document struct {
	Version int    `json:"version"` // Always 1
	Type    string `json:"type"`    // Always "doc"
	Content []Node `json:"content"`
}

// Node is a node in an ADF document.
type Node struct {
	Type    string         `json:"type"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Mark is formatting applied to a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// ADF node types emitted by this package.
const (
	NodeDoc         = "doc"
	NodeParagraph   = "paragraph"
	NodeText        = "text"
	NodeHardBreak   = "hardBreak"
	NodeHeading     = "heading"
	NodeBulletList  = "bulletList"
	NodeOrderedList = "orderedList"
	NodeListItem    = "listItem"
	NodeCodeBlock   = "codeBlock"
	NodeBlockquote  = "blockquote"
	NodeRule        = "rule"
	NodeMention     = "mention"
	NodeEmoji       = "emoji"
	NodeInlineCard  = "inlineCard"
)

// ADF mark types.
const (
	MarkStrong = "strong"
	MarkEm     = "em"
	MarkCode   = "code"
	MarkLink   = "link"
	MarkStrike = "strike"
)

// Document structure errors.
var (
	ErrVersionInvalid  = errors.New("adf version must be 1")
	ErrRootTypeInvalid = errors.New("adf root type must be 'doc'")
)

// NewDocument creates an empty ADF document.
func NewDocument() *Document {
	return &Document{
		Version: 1,
		Type:    NodeDoc,
		Content: []Node{},
	}
}

// Validate checks the document root structure.
func (d *Document) Validate() error {
	if d.Version != 1 {
		return ErrVersionInvalid
	}
	if d.Type != NodeDoc {
		return ErrRootTypeInvalid
	}
	return nil
}

// AddParagraph appends a paragraph with plain text.
func (d *Document) AddParagraph(text string) {
	d.Content = append(d.Content, Node{
		Type:    NodeParagraph,
		Content: []Node{{Type: NodeText, Text: text}},
	})
}

// AddHeading appends a heading. Levels outside 1-6 are clamped.
func (d *Document) AddHeading(level int, text string) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	d.Content = append(d.Content, Node{
		Type:    NodeHeading,
		Attrs:   map[string]any{"level": level},
		Content: []Node{{Type: NodeText, Text: text}},
	})
}

// AddCodeBlock appends a code block with an optional language.
func (d *Document) AddCodeBlock(code, language string) {
	node := Node{
		Type:    NodeCodeBlock,
		Content: []Node{{Type: NodeText, Text: code}},
	}
	if language != "" {
		node.Attrs = map[string]any{"language": language}
	}
	d.Content = append(d.Content, node)
}

// AddBulletList appends a bullet list of plain text items.
func (d *Document) AddBulletList(items []string) {
	d.Content = append(d.Content, Node{Type: NodeBulletList, Content: plainListItems(items)})
}

// AddOrderedList appends an ordered list of plain text items.
func (d *Document) AddOrderedList(items []string) {
	d.Content = append(d.Content, Node{Type: NodeOrderedList, Content: plainListItems(items)})
}

// AddRule appends a horizontal rule.
func (d *Document) AddRule() {
	d.Content = append(d.Content, Node{Type: NodeRule})
}

func plainListItems(items []string) []Node {
	nodes := make([]Node, len(items))
	for i, item := range items {
		nodes[i] = Node{
			Type: NodeListItem,
			Content: []Node{{
				Type:    NodeParagraph,
				Content: []Node{{Type: NodeText, Text: item}},
			}},
		}
	}
	return nodes
}

// TextWithMark creates a text node with a single formatting mark.
func TextWithMark(text, markType string, attrs map[string]any) Node {
	mark := Mark{Type: markType}
	if attrs != nil {
		mark.Attrs = attrs
	}
	return Node{Type: NodeText, Text: text, Marks: []Mark{mark}}
}

// Bold creates bold text.
func Bold(text string) Node {
	return TextWithMark(text, MarkStrong, nil)
}

// Italic creates italic text.
func Italic(text string) Node {
	return TextWithMark(text, MarkEm, nil)
}

// Code creates inline code text.
func Code(text string) Node {
	return TextWithMark(text, MarkCode, nil)
}

// Link creates linked text.
func Link(text, url string) Node {
	return TextWithMark(text, MarkLink, map[string]any{"href": url})
}
