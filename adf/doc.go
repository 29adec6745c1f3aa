// Package adf models the subset of Atlassian Document Format that Jira
// Cloud accepts for rich-text fields, and converts markdown node trees
// into it.
//
// The central entry point is FromMarkdown (or Convert for a pre-parsed
// tree), which produces a version-1 "doc" root containing the converted
// block nodes. The conversion is a pure tree transform and is testable
// without any network layer.
//
// Three constructs are handled specially:
//   - Blockquotes are rejected with an UnsupportedConstructError carrying
//     the source line, because the Jira API returns an error for them.
//   - Image references down-convert to a "[Image: alt]" text placeholder.
//   - Task list items become plain bullet items with a literal "[ ]"/"[x]"
//     prefix; the interactive taskItem node type is not reliably honored
//     by the server.
//
// Render and FromAny go the other way, flattening fetched ADF bodies to
// markdown-flavored text for terminal display.
package adf
