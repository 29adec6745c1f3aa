// Package markdown tokenizes Markdown text into a block and inline node tree.
//
// The parser is line-oriented and intentionally small: it recognizes the
// subset of Markdown that survives conversion to Atlassian Document Format
// (headings, bullet and ordered lists, task items, fenced code blocks,
// horizontal rules, paragraphs) plus bold, italic, inline code, links, and
// image references within text.
//
// Parsing is best-effort. Malformed inline spans (an unterminated "**", a
// stray backtick) degrade to literal text rather than producing an error,
// so Parse has no error return. Blockquotes are recognized and carried
// in the tree (with their source line) so that the adf package can reject
// them with a useful message instead of silently dropping them.
//
// List nesting is resolved from leading whitespace: each tab is one nesting
// level, and spaces are divided by the smallest non-zero space indent
// observed in the same run of list lines.
package markdown
