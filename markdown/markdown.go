package markdown

// NodeType identifies the kind of a markdown node.
type NodeType string

// Block node types.
const (
	NodeParagraph      NodeType = "paragraph"
	NodeHeading        NodeType = "heading"
	NodeBulletList     NodeType = "bulletList"
	NodeOrderedList    NodeType = "orderedList"
	NodeListItem       NodeType = "listItem"
	NodeTaskItem       NodeType = "taskItem"
	NodeCodeBlock      NodeType = "codeBlock"
	NodeBlockquote     NodeType = "blockquote"
	NodeHorizontalRule NodeType = "rule"
)

// Inline node types.
const (
	NodeText  NodeType = "text"
	NodeImage NodeType = "image"
)

// MarkType identifies inline formatting applied to a text node.
type MarkType string

// Mark types.
const (
	MarkBold   MarkType = "bold"
	MarkItalic MarkType = "italic"
	MarkCode   MarkType = "code"
	MarkLink   MarkType = "link"
)

// Mark is a formatting annotation on a text node. Href is set for link marks.
type Mark struct {
	Type MarkType
	Href string
}

// Node is a markdown parse-tree node. A document is an ordered sequence of
// block nodes, each exclusively owning its children.
//
// Which fields are meaningful depends on Type:
//   - NodeHeading: Level, Children (inline)
//   - NodeParagraph, NodeListItem: Children
//   - NodeTaskItem: Checked, Children (inline)
//   - NodeCodeBlock: Language, Content
//   - NodeText: Content, Marks
//   - NodeImage: Alt, Destination
//   - NodeBlockquote: Children (inline), Line
type Node struct {
	Type     NodeType
	Children []Node

	// Content holds literal text for text and codeBlock nodes.
	Content string

	// Marks holds formatting for text nodes. Never empty when present.
	Marks []Mark

	// Level is the heading level, 1-6.
	Level int

	// Language is the fence info string of a code block, may be empty.
	Language string

	// Checked reports task item state.
	Checked bool

	// Alt and Destination describe an image reference.
	Alt         string
	Destination string

	// Line is the 1-based source line the node started on.
	Line int
}

// Text creates a plain text node.
func Text(content string) Node {
	return Node{Type: NodeText, Content: content}
}

// TextWithMarks creates a text node carrying the given marks.
func TextWithMarks(content string, marks ...Mark) Node {
	return Node{Type: NodeText, Content: content, Marks: marks}
}
