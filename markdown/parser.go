package markdown

import (
	"strings"
)

// Parse tokenizes markdown text into a sequence of block nodes. It is a pure
// function: deterministic, no I/O, and it never fails. Constructs it cannot
// represent degrade to literal text instead of erroring; blockquotes are
// recognized and carried so downstream emitters can reject them with the
// source line attached.
func Parse(text string) []Node {
	lines := strings.Split(text, "\n")

	var nodes []Node
	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			node, next := parseFence(lines, i)
			nodes = append(nodes, node)
			i = next
			continue
		}

		if level, rest, ok := splitHeading(trimmed); ok {
			nodes = append(nodes, Node{
				Type:     NodeHeading,
				Level:    level,
				Children: parseInline(rest),
				Line:     i + 1,
			})
			i++
			continue
		}

		if isRule(trimmed) {
			nodes = append(nodes, Node{Type: NodeHorizontalRule, Line: i + 1})
			i++
			continue
		}

		if strings.HasPrefix(trimmed, ">") {
			node, next := parseBlockquote(lines, i)
			nodes = append(nodes, node)
			i = next
			continue
		}

		if _, ok := parseListLine(line, i+1); ok {
			lists, next := parseListRun(lines, i)
			nodes = append(nodes, lists...)
			i = next
			continue
		}

		node, next := parseParagraph(lines, i)
		nodes = append(nodes, node)
		i = next
	}

	return nodes
}

// splitHeading recognizes "#".."######" followed by a space.
func splitHeading(trimmed string) (level int, rest string, ok bool) {
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level == len(trimmed) {
		return level, "", true
	}
	if trimmed[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(trimmed[level:]), true
}

// isRule recognizes horizontal rules: three or more of the same
// character from -, *, _.
func isRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	c := trimmed[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(trimmed); i++ {
		if trimmed[i] != c {
			return false
		}
	}
	return true
}

// parseFence consumes a fenced code block starting at lines[start].
// An unterminated fence runs to the end of input rather than erroring.
func parseFence(lines []string, start int) (Node, int) {
	language := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[start]), "```"))

	var code []string
	i := start + 1
	for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
		code = append(code, lines[i])
		i++
	}
	if i < len(lines) {
		i++ // closing fence
	}

	return Node{
		Type:     NodeCodeBlock,
		Language: language,
		Content:  strings.Join(code, "\n"),
		Line:     start + 1,
	}, i
}

// parseBlockquote consumes consecutive "> " lines into a single blockquote
// node. The emitter decides whether to reject it; the parser only records it.
func parseBlockquote(lines []string, start int) (Node, int) {
	var quoted []string
	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		text := strings.TrimPrefix(trimmed, ">")
		quoted = append(quoted, strings.TrimSpace(text))
		i++
	}

	return Node{
		Type:     NodeBlockquote,
		Children: parseInline(strings.Join(quoted, " ")),
		Line:     start + 1,
	}, i
}

// parseParagraph collects consecutive plain lines into one paragraph,
// joining them with spaces.
func parseParagraph(lines []string, start int) (Node, int) {
	var parts []string
	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || isBlockStart(lines[i], trimmed) {
			break
		}
		parts = append(parts, trimmed)
		i++
	}

	return Node{
		Type:     NodeParagraph,
		Children: parseInline(strings.Join(parts, " ")),
		Line:     start + 1,
	}, i
}

// isBlockStart reports whether a line begins a non-paragraph block.
func isBlockStart(line, trimmed string) bool {
	if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, ">") || isRule(trimmed) {
		return true
	}
	if _, _, ok := splitHeading(trimmed); ok {
		return true
	}
	_, ok := parseListLine(line, 0)
	return ok
}

// listLine is one line of a list run before nesting is resolved.
type listLine struct {
	tabs    int // leading tab count, each one nesting level
	spaces  int // leading space count, resolved against the run's space unit
	depth   int // resolved after the whole run is collected
	ordered bool
	task    bool
	checked bool
	text    string
	line    int
}

// parseListLine recognizes a bullet, ordered, or task list line.
func parseListLine(line string, lineNo int) (listLine, bool) {
	tabs, spaces := 0, 0
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		if line[i] == '\t' {
			tabs++
		} else {
			spaces++
		}
		i++
	}
	rest := line[i:]

	if len(rest) >= 2 && (rest[0] == '-' || rest[0] == '*') && rest[1] == ' ' {
		item := listLine{tabs: tabs, spaces: spaces, text: strings.TrimSpace(rest[2:]), line: lineNo}
		if box, checked, ok := splitTaskBox(item.text); ok {
			item.task = true
			item.checked = checked
			item.text = box
		}
		return item, true
	}

	// Ordered: up to three digits, a dot, a space.
	digits := 0
	for digits < len(rest) && digits < 3 && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits+1 < len(rest) && rest[digits] == '.' && rest[digits+1] == ' ' {
		return listLine{
			tabs:    tabs,
			spaces:  spaces,
			ordered: true,
			text:    strings.TrimSpace(rest[digits+2:]),
			line:    lineNo,
		}, true
	}

	return listLine{}, false
}

// splitTaskBox strips a leading "[ ] " or "[x] " checkbox.
func splitTaskBox(text string) (rest string, checked bool, ok bool) {
	switch {
	case strings.HasPrefix(text, "[ ] "):
		return strings.TrimSpace(text[4:]), false, true
	case strings.HasPrefix(text, "[x] "), strings.HasPrefix(text, "[X] "):
		return strings.TrimSpace(text[4:]), true, true
	}
	return "", false, false
}

// parseListRun consumes consecutive list lines and resolves indentation into
// nested lists. Each leading tab is one nesting level on its own; leading
// spaces are divided by the smallest non-zero space indent observed in the
// run, so two-space and four-space styles both resolve the same way.
func parseListRun(lines []string, start int) ([]Node, int) {
	var items []listLine
	i := start
	for i < len(lines) {
		item, ok := parseListLine(lines[i], i+1)
		if !ok {
			break
		}
		items = append(items, item)
		i++
	}

	unit := 0
	for _, it := range items {
		if it.spaces > 0 && (unit == 0 || it.spaces < unit) {
			unit = it.spaces
		}
	}
	for idx := range items {
		items[idx].depth = items[idx].tabs
		if unit > 0 {
			items[idx].depth += items[idx].spaces / unit
		}
	}

	var lists []Node
	pos := 0
	for pos < len(items) {
		lists = append(lists, buildList(items, &pos, items[pos].depth))
	}
	return lists, i
}

// buildList assembles one list node at the given depth, attaching
// deeper runs to the preceding item.
func buildList(items []listLine, pos *int, depth int) Node {
	list := Node{Type: NodeBulletList, Line: items[*pos].line}
	if items[*pos].ordered {
		list.Type = NodeOrderedList
	}
	ordered := items[*pos].ordered

	for *pos < len(items) {
		it := items[*pos]
		if it.depth < depth {
			break
		}
		if it.depth > depth {
			sub := buildList(items, pos, it.depth)
			if n := len(list.Children); n > 0 {
				list.Children[n-1].Children = append(list.Children[n-1].Children, sub)
			} else {
				list.Children = append(list.Children, Node{Type: NodeListItem, Children: []Node{sub}})
			}
			continue
		}
		if it.ordered != ordered {
			// Type switch at the same depth starts a sibling list.
			break
		}

		item := Node{Type: NodeListItem, Line: it.line}
		if it.task {
			item.Type = NodeTaskItem
			item.Checked = it.checked
			item.Children = parseInline(it.text)
		} else {
			item.Children = []Node{{Type: NodeParagraph, Children: parseInline(it.text)}}
		}
		list.Children = append(list.Children, item)
		*pos++
	}

	return list
}
