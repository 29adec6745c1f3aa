package rest

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Defaults for the executor.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxAttempts  = 3
	DefaultRetryWaitMin = 1 * time.Second
	DefaultRetryWaitMax = 30 * time.Second
)

// Config holds configuration for the request executor.
type Config struct {
	// BaseURL is the root of the Jira instance, without trailing slash.
	BaseURL string

	// Email and APIToken form the Basic auth pair for Jira Cloud.
	Email    string
	APIToken string

	// BearerToken is an alternative to Email/APIToken.
	BearerToken string

	// HTTPClient overrides the default client (used by tests).
	HTTPClient *http.Client

	Timeout      time.Duration
	MaxAttempts  int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RetryJitter  bool

	Logger *slog.Logger
}

// Client executes HTTP requests against the Jira REST API with bounded
// retries, exponential backoff, and error normalization.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	email        string
	apiToken     string
	bearerToken  string
	maxAttempts  int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	retryJitter  bool
	logger       *slog.Logger
}

// NewClient creates an executor from cfg, applying defaults for anything
// unset.
func NewClient(cfg Config) *Client {
	c := &Client{
		httpClient:   cfg.HTTPClient,
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		email:        cfg.Email,
		apiToken:     cfg.APIToken,
		bearerToken:  cfg.BearerToken,
		maxAttempts:  cfg.MaxAttempts,
		retryWaitMin: cfg.RetryWaitMin,
		retryWaitMax: cfg.RetryWaitMax,
		retryJitter:  cfg.RetryJitter,
		logger:       cfg.Logger,
	}

	if c.httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = DefaultMaxAttempts
	}
	if c.retryWaitMin <= 0 {
		c.retryWaitMin = DefaultRetryWaitMin
	}
	if c.retryWaitMax <= 0 {
		c.retryWaitMax = DefaultRetryWaitMax
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Request describes one API call. Idempotent controls the retry class: an
// idempotent request may be re-sent after a 5xx or 429 response, while a
// non-idempotent request (issue creation) is only re-sent when no response
// was received at all, so a create can never run twice server-side.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is JSON-marshaled when set.
	Body any

	// RawBody carries a pre-encoded payload (multipart uploads).
	// ContentType must be set alongside it.
	RawBody     []byte
	ContentType string

	Headers map[string]string

	Idempotent bool
}

// Do executes the request with up to MaxAttempts tries. Callers own the
// response body on success; any response with status >= 400 is consumed and
// returned as a normalized *APIError. Network-level failures after the last
// attempt come back as *TransportError.
//
// The retry decision is an explicit branch at each attempt: transport errors
// and (for idempotent requests only) 5xx/429 responses are retried with
// exponential backoff; every other outcome returns immediately.
func (c *Client) Do(ctx context.Context, req Request) (*http.Response, error) {
	body, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	wait := c.retryWaitMin
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		httpReq, err := c.newRequest(ctx, req, target, body)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("jira api request",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Int("attempt", attempt))

		resp, doErr := c.httpClient.Do(httpReq)
		if doErr != nil {
			// No response received, so a retry is duplicate-safe even for
			// non-idempotent requests.
			lastErr = doErr
			if attempt < c.maxAttempts {
				if err := c.sleep(ctx, c.withJitter(wait)); err != nil {
					return nil, err
				}
				wait = min(wait*2, c.retryWaitMax)
				continue
			}
			return nil, &TransportError{Endpoint: req.Path, Attempts: attempt, Err: doErr}
		}

		if resp.StatusCode < 400 {
			return resp, nil
		}

		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		if retryable && req.Idempotent && attempt < c.maxAttempts {
			delay := c.withJitter(wait)
			if ra := retryAfter(resp); ra > 0 {
				delay = ra
			}
			c.logger.Debug("retrying after error response",
				slog.Int("status", resp.StatusCode),
				slog.Duration("wait", delay))
			_ = resp.Body.Close()
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			wait = min(wait*2, c.retryWaitMax)
			continue
		}

		return nil, parseAPIError(resp, req.Path)
	}

	return nil, &TransportError{Endpoint: req.Path, Attempts: c.maxAttempts, Err: lastErr}
}

// DoJSON executes the request and decodes a JSON response into result.
// A nil result discards the body.
func (c *Client) DoJSON(ctx context.Context, req Request, result any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", req.Path, err)
	}
	return nil
}

// Get performs an idempotent GET.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	return c.DoJSON(ctx, Request{
		Method:     http.MethodGet,
		Path:       path,
		Query:      query,
		Idempotent: true,
	}, result)
}

// Post performs a non-idempotent POST: never re-sent once any response was
// received. Use PostIdempotent for read-only POST endpoints like search.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.DoJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	}, result)
}

// PostIdempotent performs a POST whose effect is read-only or safely
// repeatable, so transient server errors are retried.
func (c *Client) PostIdempotent(ctx context.Context, path string, body, result any) error {
	return c.DoJSON(ctx, Request{
		Method:     http.MethodPost,
		Path:       path,
		Body:       body,
		Idempotent: true,
	}, result)
}

// Put performs an idempotent PUT.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.DoJSON(ctx, Request{
		Method:     http.MethodPut,
		Path:       path,
		Body:       body,
		Idempotent: true,
	}, result)
}

// Delete performs an idempotent DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.DoJSON(ctx, Request{
		Method:     http.MethodDelete,
		Path:       path,
		Idempotent: true,
	}, nil)
}

// Upload posts a file as multipart/form-data. Uploads are non-idempotent.
func (c *Client) Upload(ctx context.Context, path, fieldName, fileName string, contents []byte, result any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := part.Write(contents); err != nil {
		return fmt.Errorf("write multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	return c.DoJSON(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		RawBody:     buf.Bytes(),
		ContentType: mw.FormDataContentType(),
	}, result)
}

func encodeBody(req Request) ([]byte, error) {
	if req.Body == nil {
		return req.RawBody, nil
	}
	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return data, nil
}

func (c *Client) newRequest(ctx context.Context, req Request, target string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	// Required by Jira for attachment uploads; harmless elsewhere.
	httpReq.Header.Set("X-Atlassian-Token", "no-check")
	if body != nil {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	switch {
	case c.email != "" && c.apiToken != "":
		credentials := c.email + ":" + c.apiToken
		encoded := base64.StdEncoding.EncodeToString([]byte(credentials))
		httpReq.Header.Set("Authorization", "Basic "+encoded)
	case c.bearerToken != "":
		httpReq.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	return httpReq, nil
}

// sleep waits for the delay or until the context is canceled.
func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func (c *Client) withJitter(delay time.Duration) time.Duration {
	if !c.retryJitter {
		return delay
	}
	return time.Duration(float64(delay) * (0.7 + cryptoRandFloat64()*0.6))
}

// retryAfter reads the Retry-After header on 429 responses.
func retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// cryptoRandFloat64 returns a cryptographically secure random float64 in [0.0, 1.0).
func cryptoRandFloat64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0.5
	}
	u := binary.LittleEndian.Uint64(b[:])
	return float64(u>>11) / (1 << 53) * math.Nextafter(1, 2)
}
