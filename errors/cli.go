package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mwhitfield/jiractl/jira"
	"github.com/mwhitfield/jiractl/rest"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// Wrap translates API and config errors into CLIErrors with actionable
// suggestions. Errors that need no translation pass through unchanged.
func Wrap(err error, serverURL string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	switch classify(err) {
	case rest.KindAuth:
		return &CLIError{
			Err:        err,
			Message:    "Authentication failed.",
			Suggestion: "Check JIRA_EMAIL and JIRA_API_TOKEN.\nAPI tokens can be created at https://id.atlassian.com/manage-profile/security/api-tokens",
		}
	case rest.KindForbidden:
		return &CLIError{
			Err:        err,
			Message:    "You don't have permission to perform this action.",
			Suggestion: "Ask a Jira administrator for access to this project.",
		}
	case rest.KindNotFound:
		return &CLIError{
			Err:        err,
			Message:    notFoundMessage(err),
			Suggestion: "Check the key and that you have permission to view it.",
		}
	case rest.KindValidation:
		return &CLIError{
			Err:        err,
			Message:    "Jira rejected the request.",
			Details:    apiDetails(err),
			Suggestion: "Fix the reported fields and try again.",
		}
	case rest.KindRateLimited:
		return &CLIError{
			Err:        err,
			Message:    "Jira is rate limiting requests.",
			Suggestion: "Wait a minute before retrying.",
		}
	case rest.KindTransientNetwork:
		return &CLIError{
			Err:        err,
			Message:    fmt.Sprintf("Cannot reach %s", serverURL),
			Details:    err.Error(),
			Suggestion: "Check that:\n  - The URL is correct\n  - Your network connection is working",
		}
	}

	return err
}

// classify folds the package-level sentinels into the API error taxonomy,
// since operations wrap not-found responses in their own sentinels.
func classify(err error) rest.Kind {
	kind := rest.ClassifyError(err)
	if kind == rest.KindUnknown && jira.IsNotFound(err) {
		return rest.KindNotFound
	}
	return kind
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, jira.ErrIssueNotFound):
		return "Issue not found."
	case errors.Is(err, jira.ErrProjectNotFound):
		return "Project not found."
	case errors.Is(err, jira.ErrUserNotFound):
		return "No Jira user matches that email."
	default:
		return "Not found."
	}
}

func apiDetails(err error) string {
	var apiErr *rest.APIError
	if !errors.As(err, &apiErr) {
		return ""
	}
	return strings.Join(apiErr.AllMessages(), "\n")
}

// Exit codes for the CLI.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitUsage      = 2
	ExitAuth       = 3
	ExitNotFound   = 4
	ExitValidation = 5
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch classify(err) {
	case rest.KindAuth, rest.KindForbidden:
		return ExitAuth
	case rest.KindNotFound:
		return ExitNotFound
	case rest.KindValidation:
		return ExitValidation
	}

	switch {
	case errors.Is(err, jira.ErrIssueKeyRequired),
		errors.Is(err, jira.ErrIssueKeyInvalid),
		errors.Is(err, jira.ErrNoFieldsToUpdate):
		return ExitUsage
	}

	return ExitError
}
