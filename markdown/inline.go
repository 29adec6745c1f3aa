package markdown

import (
	"strings"
)

// parseInline scans a run of text for bold, italic, inline code, links, and
// image references. Malformed or unterminated spans are emitted as literal
// text; the scanner never fails.
func parseInline(text string) []Node {
	return scanInline(text, nil)
}

// scanInline is the recursive worker. marks are the formatting already in
// effect for this span; nested spans compose by appending to it.
func scanInline(s string, marks []Mark) []Node {
	var out []Node
	var lit strings.Builder

	flush := func() {
		if lit.Len() == 0 {
			return
		}
		out = append(out, Node{Type: NodeText, Content: lit.String(), Marks: marks})
		lit.Reset()
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '`':
			// Code spans are literal: no nested formatting inside.
			if end := strings.IndexByte(s[i+1:], '`'); end > 0 {
				flush()
				out = append(out, Node{
					Type:    NodeText,
					Content: s[i+1 : i+1+end],
					Marks:   withMark(marks, Mark{Type: MarkCode}),
				})
				i += end + 2
				continue
			}

		case strings.HasPrefix(s[i:], "**"):
			if end := strings.Index(s[i+2:], "**"); end > 0 {
				flush()
				out = append(out, scanInline(s[i+2:i+2+end], withMark(marks, Mark{Type: MarkBold}))...)
				i += end + 4
				continue
			}

		case c == '*':
			if end := strings.IndexByte(s[i+1:], '*'); end > 0 {
				flush()
				out = append(out, scanInline(s[i+1:i+1+end], withMark(marks, Mark{Type: MarkItalic}))...)
				i += end + 2
				continue
			}

		case c == '_':
			if end := underscoreClose(s, i); end > 0 {
				flush()
				out = append(out, scanInline(s[i+1:end], withMark(marks, Mark{Type: MarkItalic}))...)
				i = end + 1
				continue
			}

		case c == '!' && i+1 < len(s) && s[i+1] == '[':
			if alt, dest, next, ok := parseBracketPair(s, i+1); ok {
				flush()
				out = append(out, Node{Type: NodeImage, Alt: alt, Destination: dest})
				i = next
				continue
			}

		case c == '[':
			if label, dest, next, ok := parseBracketPair(s, i); ok {
				flush()
				out = append(out, scanInline(label, withMark(marks, Mark{Type: MarkLink, Href: dest}))...)
				i = next
				continue
			}
		}

		lit.WriteByte(c)
		i++
	}

	flush()
	return out
}

// underscoreClose finds the closing underscore for an emphasis span opened at
// s[open]. Underscores inside words (snake_case) do not open or close spans.
func underscoreClose(s string, open int) int {
	if open > 0 && isWordByte(s[open-1]) {
		return -1
	}
	if open+1 >= len(s) || s[open+1] == ' ' {
		return -1
	}
	for j := open + 1; j < len(s); j++ {
		if s[j] != '_' {
			continue
		}
		if j+1 == len(s) || !isWordByte(s[j+1]) {
			return j
		}
	}
	return -1
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// parseBracketPair parses "[label](dest)" starting at s[open] == '['.
// next is the index just past the closing parenthesis.
func parseBracketPair(s string, open int) (label, dest string, next int, ok bool) {
	close := strings.IndexByte(s[open:], ']')
	if close < 0 {
		return "", "", 0, false
	}
	close += open
	if close+1 >= len(s) || s[close+1] != '(' {
		return "", "", 0, false
	}
	end := strings.IndexByte(s[close+2:], ')')
	if end < 0 {
		return "", "", 0, false
	}
	end += close + 2
	return s[open+1 : close], s[close+2 : end], end + 1, true
}

// withMark returns a fresh mark slice extended with m. The input is copied so
// sibling spans never share backing arrays.
func withMark(marks []Mark, m Mark) []Mark {
	out := make([]Mark, len(marks), len(marks)+1)
	copy(out, marks)
	return append(out, m)
}
