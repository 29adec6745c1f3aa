// Package rest executes HTTP requests against the Jira REST API with
// bounded retries, exponential backoff, and error normalization.
//
// # Retry policy
//
// Each request makes up to MaxAttempts tries (default 3). Between attempts
// the executor sleeps with exponential backoff starting at RetryWaitMin
// (default 1s), capped at RetryWaitMax, honoring Retry-After on 429
// responses. Only transient outcomes are retried: network-level failures,
// 5xx responses, and 429. Any other 4xx surfaces immediately.
//
// The Idempotent flag on a Request controls the retry class. Idempotent
// requests (reads, PUT updates) may be re-sent after an error response.
// Non-idempotent requests (issue creation) are only re-sent when no
// response was received at all; once the server has answered, even with an
// error, the loop stops so a create can never run twice.
//
// # Error normalization
//
// Failures come back as *APIError (a response with status >= 400, carrying
// Jira's own error messages when parseable) or *TransportError (the request
// never reached the server). Both unwrap to sentinel errors for errors.Is
// checks, and ClassifyError maps any of them to a Kind for display.
package rest
