package jira

import (
	"errors"

	"github.com/mwhitfield/jiractl/rest"
)

// Configuration errors.
var (
	ErrConfigURLRequired   = errors.New("jira url is required")
	ErrConfigURLScheme     = errors.New("jira url must start with http:// or https://")
	ErrConfigEmailRequired = errors.New("jira email is required")
	ErrConfigTokenRequired = errors.New("jira api token is required")
)

// Issue errors.
var (
	ErrIssueNotFound    = errors.New("jira issue not found")
	ErrProjectNotFound  = errors.New("jira project not found")
	ErrIssueKeyRequired = errors.New("issue key is required")
	ErrIssueKeyInvalid  = errors.New("invalid issue key format")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Transition errors.
var (
	ErrTransitionNotFound = errors.New("no transition leads to the requested status")
)

// User errors.
var (
	ErrUserNotFound = errors.New("jira user not found")
)

// Epic linking errors.
var (
	ErrEpicLinkFieldNotFound = errors.New("no epic link field available on issue")
)

// IsNotFound reports whether the error indicates a missing resource.
func IsNotFound(err error) bool {
	return rest.IsNotFound(err) || errors.Is(err, ErrIssueNotFound) ||
		errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrUserNotFound)
}

// IsUnauthorized reports whether the error indicates authentication failed.
func IsUnauthorized(err error) bool {
	return rest.IsUnauthorized(err)
}

// IsRetryable reports whether the error is transient.
func IsRetryable(err error) bool {
	return rest.IsRetryable(err)
}
