package adf

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Render converts an ADF document back to markdown-flavored text for
// terminal display. It is best-effort: unknown node types contribute
// whatever text their content carries.
func Render(doc *Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := range doc.Content {
		renderNode(&sb, &doc.Content[i], 0)
	}
	return strings.TrimSpace(sb.String()), nil
}

// FromAny renders a description or comment body of unknown shape. Jira v3
// returns ADF objects; plain strings pass through unchanged.
func FromAny(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal adf: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("unmarshal adf: %w", err)
	}
	return Render(&doc)
}

func renderNode(sb *strings.Builder, node *Node, depth int) {
	switch node.Type {
	case NodeParagraph:
		renderInline(sb, node.Content)
		sb.WriteString("\n\n")

	case NodeHeading:
		level := 1
		if l, ok := node.Attrs["level"].(float64); ok {
			level = int(l)
		} else if l, ok := node.Attrs["level"].(int); ok {
			level = l
		}
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteString(" ")
		renderInline(sb, node.Content)
		sb.WriteString("\n\n")

	case NodeCodeBlock:
		lang, _ := node.Attrs["language"].(string)
		sb.WriteString("```")
		sb.WriteString(lang)
		sb.WriteString("\n")
		renderInline(sb, node.Content)
		sb.WriteString("\n```\n\n")

	case NodeBulletList:
		for _, item := range node.Content {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString("- ")
			renderListItem(sb, item, depth)
		}
		if depth == 0 {
			sb.WriteString("\n")
		}

	case NodeOrderedList:
		for i, item := range node.Content {
			sb.WriteString(strings.Repeat("  ", depth))
			fmt.Fprintf(sb, "%d. ", i+1)
			renderListItem(sb, item, depth)
		}
		if depth == 0 {
			sb.WriteString("\n")
		}

	case NodeBlockquote:
		for i := range node.Content {
			sb.WriteString("> ")
			renderNode(sb, &node.Content[i], depth)
		}

	case NodeRule:
		sb.WriteString("---\n\n")

	case NodeText:
		renderText(sb, node)

	default:
		for i := range node.Content {
			renderNode(sb, &node.Content[i], depth+1)
		}
	}
}

func renderListItem(sb *strings.Builder, item Node, depth int) {
	wroteLine := false
	for i := range item.Content {
		child := &item.Content[i]
		switch child.Type {
		case NodeParagraph:
			if wroteLine {
				sb.WriteString(strings.Repeat("  ", depth+1))
			}
			renderInline(sb, child.Content)
			sb.WriteString("\n")
			wroteLine = true
		case NodeBulletList, NodeOrderedList:
			renderNode(sb, child, depth+1)
		default:
			renderNode(sb, child, depth+1)
		}
	}
	if !wroteLine && len(item.Content) == 0 {
		sb.WriteString("\n")
	}
}

func renderInline(sb *strings.Builder, nodes []Node) {
	for i := range nodes {
		node := &nodes[i]
		switch node.Type {
		case NodeText:
			renderText(sb, node)
		case NodeHardBreak:
			sb.WriteString("\n")
		case NodeMention:
			if id, ok := node.Attrs["text"].(string); ok {
				sb.WriteString(id)
			} else if id, ok := node.Attrs["id"].(string); ok {
				sb.WriteString("@" + id)
			}
		case NodeEmoji:
			if short, ok := node.Attrs["shortName"].(string); ok {
				sb.WriteString(short)
			}
		case NodeInlineCard:
			if url, ok := node.Attrs["url"].(string); ok {
				sb.WriteString(url)
			}
		default:
			renderInline(sb, node.Content)
		}
	}
}

// renderText re-applies marks as markdown delimiters, innermost last.
func renderText(sb *strings.Builder, node *Node) {
	prefix := ""
	suffix := ""
	for _, mark := range node.Marks {
		switch mark.Type {
		case MarkStrong:
			prefix = "**" + prefix
			suffix += "**"
		case MarkEm:
			prefix = "*" + prefix
			suffix += "*"
		case MarkCode:
			prefix = "`" + prefix
			suffix += "`"
		case MarkStrike:
			prefix = "~~" + prefix
			suffix += "~~"
		case MarkLink:
			if href, ok := mark.Attrs["href"].(string); ok {
				prefix = "[" + prefix
				suffix = suffix + "](" + href + ")"
			}
		}
	}
	sb.WriteString(prefix)
	sb.WriteString(node.Text)
	sb.WriteString(suffix)
}
