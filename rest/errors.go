package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel errors for normalized API failures.
var (
	// ErrBadRequest indicates the request was malformed or failed validation.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized indicates invalid or missing authentication.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrForbidden indicates the user lacks permission for the operation.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServerError indicates a server-side error occurred.
	ErrServerError = errors.New("server error")

	// ErrTransientNetwork indicates the request never reached the server.
	ErrTransientNetwork = errors.New("transient network failure")
)

// Kind classifies a normalized API error for display and exit-code mapping.
type Kind string

// Error classifications.
const (
	KindAuth             Kind = "auth"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation"
	KindRateLimited      Kind = "rate_limited"
	KindTransientNetwork Kind = "transient_network"
	KindUnknown          Kind = "unknown"
)

// APIError is an error response from the Jira API, normalized after the
// retry loop gave up. Messages and FieldErrors carry Jira's own error body
// when it was parseable.
type APIError struct {
	StatusCode  int               `json:"-"`
	Messages    []string          `json:"errorMessages,omitempty"`
	FieldErrors map[string]string `json:"errors,omitempty"`
	Endpoint    string            `json:"-"`
	RequestID   string            `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("jira api error (%d): %s", e.StatusCode, e.Messages[0])
	}
	for field, msg := range e.FieldErrors {
		return fmt.Sprintf("jira api error (%d): %s: %s", e.StatusCode, field, msg)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("jira api error (%d) at %s [%s]", e.StatusCode, e.Endpoint, e.RequestID)
	}
	return fmt.Sprintf("jira api error (%d) at %s", e.StatusCode, e.Endpoint)
}

// Kind returns the classification for this error.
func (e *APIError) Kind() Kind {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		if e.StatusCode >= 500 {
			return KindTransientNetwork
		}
		return KindUnknown
	}
}

// Unwrap maps the status code to a sentinel so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		if e.StatusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// AllMessages joins every error message and field error for display.
func (e *APIError) AllMessages() []string {
	out := make([]string, 0, len(e.Messages)+len(e.FieldErrors))
	out = append(out, e.Messages...)
	for field, msg := range e.FieldErrors {
		out = append(out, field+": "+msg)
	}
	return out
}

// TransportError is a network-level failure: the request never produced a
// response (connection refused, DNS failure, timeout).
type TransportError struct {
	Endpoint string
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("request to %s failed after %d attempts: %v", e.Endpoint, e.Attempts, e.Err)
	}
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

// Unwrap returns ErrTransientNetwork so errors.Is works; the original
// transport error remains reachable via errors.As on net errors.
func (e *TransportError) Unwrap() error {
	return ErrTransientNetwork
}

// ClassifyError returns the Kind for any error produced by this package.
func ClassifyError(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	if errors.Is(err, ErrTransientNetwork) {
		return KindTransientNetwork
	}
	return KindUnknown
}

// IsNotFound reports whether the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether the error indicates authentication failed.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden reports whether the error indicates permission was denied.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsRateLimited reports whether the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsRetryable reports whether the error is transient: a 5xx response, rate
// limiting, or a network-level failure.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServerError) ||
		errors.Is(err, ErrTransientNetwork) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 && apiErr.StatusCode < 600
	}
	return false
}

// parseAPIError reads a non-2xx response body into an APIError. Jira error
// bodies carry errorMessages and a field->message errors map; anything else
// falls back to the HTTP status text. Consumes and closes the body.
func parseAPIError(resp *http.Response, endpoint string) *APIError {
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		RequestID:  resp.Header.Get("X-Request-Id"),
	}

	if json.Unmarshal(body, apiErr) != nil || (len(apiErr.Messages) == 0 && len(apiErr.FieldErrors) == 0) {
		apiErr.Messages = []string{http.StatusText(resp.StatusCode)}
	}

	return apiErr
}
