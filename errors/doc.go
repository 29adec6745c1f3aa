// Package errors translates API and config failures into messages a CLI
// user can act on, and maps errors to process exit codes.
package errors
