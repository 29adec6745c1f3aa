package jira

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/mwhitfield/jiractl/adf"
	"github.com/mwhitfield/jiractl/rest"
)

// apiPrefix is the Jira Cloud REST API root.
const apiPrefix = "/rest/api/3"

// defaultSearchFields are requested when a search does not name its own.
var defaultSearchFields = []string{
	"summary", "status", "priority", "assignee", "reporter",
	"issuetype", "created", "updated", "labels", "parent",
}

// Client provides the issue operations of the Jira Cloud REST API.
type Client struct {
	cfg    *Config
	rest   *rest.Client
	logger *slog.Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithRESTClient sets a custom request executor (used by tests).
func WithRESTClient(rc *rest.Client) ClientOption {
	return func(c *Client) {
		c.rest = rc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Jira client from cfg.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	if c.rest == nil {
		c.rest = rest.NewClient(rest.Config{
			BaseURL:      cfg.URL,
			Email:        cfg.Email,
			APIToken:     cfg.APIToken,
			Timeout:      cfg.Timeout,
			MaxAttempts:  cfg.MaxAttempts,
			RetryWaitMin: cfg.RetryWaitMin,
			RetryWaitMax: cfg.RetryWaitMax,
			RetryJitter:  cfg.RetryJitter,
			Logger:       c.logger,
		})
	}

	return c, nil
}

// ProjectKey returns the default project key.
func (c *Client) ProjectKey() string {
	return c.cfg.ProjectKey
}

// URL returns the configured Jira site URL.
func (c *Client) URL() string {
	return c.cfg.URL
}

// BrowseURL returns the web URL for an issue.
func (c *Client) BrowseURL(key string) string {
	return strings.TrimSuffix(c.cfg.URL, "/") + "/browse/" + key
}

func apiPath(endpoint string) string {
	return apiPrefix + endpoint
}

// CreateIssueParams are the caller-supplied fields for a new issue.
// Description is markdown and is converted to ADF before submission.
type CreateIssueParams struct {
	Summary       string
	Description   string
	IssueType     string // defaults to "Story"
	Priority      string
	AssigneeEmail string
	ParentKey     string
	Labels        []string
	ProjectKey    string // overrides the configured default
	CustomFields  map[string]any
}

// CreateIssue creates a new issue. Creation is non-idempotent: the request
// is never re-sent once any response was received.
func (c *Client) CreateIssue(ctx context.Context, params CreateIssueParams) (*CreateIssueResponse, error) {
	fields, err := c.buildCreateFields(ctx, params)
	if err != nil {
		return nil, err
	}

	c.logger.Info("creating issue", slog.String("summary", params.Summary))

	var result CreateIssueResponse
	if err := c.rest.Post(ctx, apiPath("/issue"), map[string]any{"fields": fields}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateEpic creates an issue of type Epic.
func (c *Client) CreateEpic(ctx context.Context, params CreateIssueParams) (*CreateIssueResponse, error) {
	params.IssueType = "Epic"
	return c.CreateIssue(ctx, params)
}

func (c *Client) buildCreateFields(ctx context.Context, params CreateIssueParams) (map[string]any, error) {
	issueType := params.IssueType
	if issueType == "" {
		issueType = "Story"
	}
	projectKey := params.ProjectKey
	if projectKey == "" {
		projectKey = c.cfg.ProjectKey
	}

	description, err := adf.FromMarkdown(params.Description)
	if err != nil {
		return nil, fmt.Errorf("convert description: %w", err)
	}

	fields := map[string]any{
		"project":     ProjectRef{Key: projectKey},
		"summary":     params.Summary,
		"description": description,
		"issuetype":   IssueTypeRef{Name: issueType},
	}

	rules := rulesFor(issueType)
	if params.Priority != "" && rules.allowsPriority {
		fields["priority"] = PriorityRef{Name: params.Priority}
	}
	if params.ParentKey != "" && rules.allowsParent {
		fields["parent"] = IssueRef{Key: params.ParentKey}
	}
	if len(params.Labels) > 0 {
		fields["labels"] = params.Labels
	}

	if params.AssigneeEmail != "" {
		accountID, err := c.AccountIDForEmail(ctx, params.AssigneeEmail)
		if err != nil {
			// The issue is still worth creating; assignment can happen later.
			c.logger.Warn("skipping assignee, user lookup failed",
				slog.String("email", params.AssigneeEmail),
				slog.String("error", err.Error()))
		} else {
			fields["assignee"] = UserRef{AccountID: accountID}
		}
	}

	for k, v := range params.CustomFields {
		fields[k] = v
	}

	return fields, nil
}

// UpdateIssueParams are the fields to change on an existing issue. Empty
// strings are skipped; a nil Labels slice leaves labels untouched while an
// empty non-nil slice clears them.
type UpdateIssueParams struct {
	Summary       string
	Description   string
	Priority      string
	AssigneeEmail string
	Labels        []string
	CustomFields  map[string]any
}

// UpdateIssue updates an issue's fields.
func (c *Client) UpdateIssue(ctx context.Context, key string, params UpdateIssueParams) error {
	if err := checkIssueKey(key); err != nil {
		return err
	}

	fields := map[string]any{}
	if params.Summary != "" {
		fields["summary"] = params.Summary
	}
	if params.Description != "" {
		description, err := adf.FromMarkdown(params.Description)
		if err != nil {
			return fmt.Errorf("convert description: %w", err)
		}
		fields["description"] = description
	}
	if params.Priority != "" {
		fields["priority"] = PriorityRef{Name: params.Priority}
	}
	if params.AssigneeEmail != "" {
		accountID, err := c.AccountIDForEmail(ctx, params.AssigneeEmail)
		if err != nil {
			return err
		}
		fields["assignee"] = UserRef{AccountID: accountID}
	}
	if params.Labels != nil {
		fields["labels"] = params.Labels
	}
	for k, v := range params.CustomFields {
		fields[k] = v
	}

	if len(fields) == 0 {
		return ErrNoFieldsToUpdate
	}

	c.logger.Info("updating issue", slog.String("key", key))
	return c.rest.Put(ctx, apiPath("/issue/"+key), map[string]any{"fields": fields}, nil)
}

// GetIssue retrieves an issue by key. expand names response expansions
// such as "renderedFields" or "changelog".
func (c *Client) GetIssue(ctx context.Context, key string, expand ...string) (*Issue, error) {
	if err := checkIssueKey(key); err != nil {
		return nil, err
	}

	var query url.Values
	if len(expand) > 0 {
		query = url.Values{"expand": {strings.Join(expand, ",")}}
	}

	var issue Issue
	if err := c.rest.Get(ctx, apiPath("/issue/"+key), query, &issue); err != nil {
		if rest.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrIssueNotFound, key)
		}
		return nil, err
	}
	return &issue, nil
}

// SearchOptions configures issue search.
type SearchOptions struct {
	StartAt    int
	MaxResults int
	Fields     []string
}

// SearchIssues searches for issues using JQL. Search POSTs are read-only
// and therefore retried like reads.
func (c *Client) SearchIssues(ctx context.Context, jql string, opts *SearchOptions) (*SearchResponse, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}
	if maxResults > 1000 {
		maxResults = 1000
	}
	fields := opts.Fields
	if len(fields) == 0 {
		fields = defaultSearchFields
	}

	body := map[string]any{
		"jql":        jql,
		"startAt":    opts.StartAt,
		"maxResults": maxResults,
		"fields":     fields,
	}

	var result SearchResponse
	if err := c.rest.PostIdempotent(ctx, apiPath("/search"), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchIterator returns a lazy iterator over every issue matching jql.
func (c *Client) SearchIterator(jql string, fields []string) *rest.PageIterator[Issue] {
	return rest.NewPageIterator(func(ctx context.Context, startAt int) ([]Issue, int, error) {
		resp, err := c.SearchIssues(ctx, jql, &SearchOptions{StartAt: startAt, Fields: fields})
		if err != nil {
			return nil, -1, err
		}
		return resp.Issues, resp.Total, nil
	})
}

// ListTransitions returns the transitions currently available for an issue.
func (c *Client) ListTransitions(ctx context.Context, key string) ([]Transition, error) {
	if err := checkIssueKey(key); err != nil {
		return nil, err
	}

	var result TransitionsResponse
	if err := c.rest.Get(ctx, apiPath("/issue/"+key+"/transitions"), nil, &result); err != nil {
		if rest.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrIssueNotFound, key)
		}
		return nil, err
	}
	return result.Transitions, nil
}

// TransitionIssue moves an issue to the named status. The target is matched
// against transition destinations: exact case-insensitive match first, then
// substring match, mirroring how people type status names.
func (c *Client) TransitionIssue(ctx context.Context, key, status string) error {
	transitions, err := c.ListTransitions(ctx, key)
	if err != nil {
		return err
	}

	transitionID := ""
	for _, t := range transitions {
		if t.To != nil && strings.EqualFold(t.To.Name, status) {
			transitionID = t.ID
			break
		}
	}
	if transitionID == "" {
		for _, t := range transitions {
			if t.To != nil && strings.Contains(strings.ToLower(t.To.Name), strings.ToLower(status)) {
				c.logger.Info("using partial status match",
					slog.String("requested", status),
					slog.String("matched", t.To.Name))
				transitionID = t.ID
				break
			}
		}
	}
	if transitionID == "" {
		names := make([]string, 0, len(transitions))
		for _, t := range transitions {
			if t.To != nil {
				names = append(names, t.To.Name)
			}
		}
		return fmt.Errorf("%w: %q (available: %s)", ErrTransitionNotFound, status, strings.Join(names, ", "))
	}

	body := TransitionRequest{Transition: TransitionRef{ID: transitionID}}
	return c.rest.PostIdempotent(ctx, apiPath("/issue/"+key+"/transitions"), body, nil)
}

// AssignIssue assigns an issue to the user with the given email.
func (c *Client) AssignIssue(ctx context.Context, key, email string) error {
	if err := checkIssueKey(key); err != nil {
		return err
	}

	accountID, err := c.AccountIDForEmail(ctx, email)
	if err != nil {
		return err
	}

	body := UserRef{AccountID: accountID}
	return c.rest.Put(ctx, apiPath("/issue/"+key+"/assignee"), body, nil)
}

// LinkIssues links two issues with the named link type (default "Relates").
func (c *Client) LinkIssues(ctx context.Context, inwardKey, outwardKey, linkType string) error {
	if err := checkIssueKey(inwardKey); err != nil {
		return err
	}
	if err := checkIssueKey(outwardKey); err != nil {
		return err
	}
	if linkType == "" {
		linkType = "Relates"
	}

	body := IssueLinkRequest{
		Type:         LinkTypeRef{Name: linkType},
		InwardIssue:  IssueRef{Key: inwardKey},
		OutwardIssue: IssueRef{Key: outwardKey},
	}
	return c.rest.Post(ctx, apiPath("/issueLink"), body, nil)
}

// LinkToEpic makes an issue a child of an epic. Team-managed projects use
// the parent field; company-managed projects that reject it fall back to
// the Epic Link custom field discovered via editmeta.
func (c *Client) LinkToEpic(ctx context.Context, issueKey, epicKey string) error {
	if err := checkIssueKey(issueKey); err != nil {
		return err
	}
	if err := checkIssueKey(epicKey); err != nil {
		return err
	}

	err := c.rest.Put(ctx, apiPath("/issue/"+issueKey),
		map[string]any{"fields": map[string]any{"parent": IssueRef{Key: epicKey}}}, nil)
	if err == nil {
		return nil
	}
	if rest.IsRetryable(err) {
		// A transient failure says nothing about parent-field support,
		// so surface it instead of switching to the custom field.
		return err
	}
	c.logger.Debug("parent field rejected, trying epic link custom field",
		slog.String("error", err.Error()))

	fieldID, metaErr := c.epicLinkFieldID(ctx, issueKey)
	if metaErr != nil {
		return fmt.Errorf("%w (parent field update failed: %v)", metaErr, err)
	}

	return c.rest.Put(ctx, apiPath("/issue/"+issueKey),
		map[string]any{"fields": map[string]any{fieldID: epicKey}}, nil)
}

// epicLinkFieldID finds the Epic Link custom field from the issue's edit
// metadata.
func (c *Client) epicLinkFieldID(ctx context.Context, key string) (string, error) {
	var meta struct {
		Fields map[string]struct {
			Name string `json:"name"`
		} `json:"fields"`
	}
	if err := c.rest.Get(ctx, apiPath("/issue/"+key+"/editmeta"), nil, &meta); err != nil {
		return "", err
	}

	for fieldID, info := range meta.Fields {
		name := strings.ToLower(info.Name)
		if name == "epic link" || name == "epic name" {
			return fieldID, nil
		}
	}
	return "", ErrEpicLinkFieldNotFound
}

// AddComment adds a markdown comment to an issue.
func (c *Client) AddComment(ctx context.Context, key, body string) (*Comment, error) {
	if err := checkIssueKey(key); err != nil {
		return nil, err
	}

	doc, err := adf.FromMarkdown(body)
	if err != nil {
		return nil, fmt.Errorf("convert comment: %w", err)
	}

	var comment Comment
	if err := c.rest.Post(ctx, apiPath("/issue/"+key+"/comment"), map[string]any{"body": doc}, &comment); err != nil {
		if rest.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrIssueNotFound, key)
		}
		return nil, err
	}
	return &comment, nil
}

// GetComments retrieves comments for an issue.
func (c *Client) GetComments(ctx context.Context, key string) ([]Comment, error) {
	if err := checkIssueKey(key); err != nil {
		return nil, err
	}

	var result CommentsResponse
	if err := c.rest.Get(ctx, apiPath("/issue/"+key+"/comment"), nil, &result); err != nil {
		if rest.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrIssueNotFound, key)
		}
		return nil, err
	}
	return result.Comments, nil
}

// GetChangelog retrieves the change history for an issue.
func (c *Client) GetChangelog(ctx context.Context, key string) ([]ChangelogEntry, error) {
	issue, err := c.GetIssue(ctx, key, "changelog")
	if err != nil {
		return nil, err
	}
	if issue.Changelog == nil {
		return nil, nil
	}
	return issue.Changelog.Histories, nil
}

// MyIssues returns issues assigned to the given email, most recently
// updated first. An empty email means the configured user.
func (c *Client) MyIssues(ctx context.Context, email string) ([]Issue, error) {
	if email == "" {
		email = c.cfg.Email
	}
	jql := fmt.Sprintf("assignee = %s ORDER BY updated DESC", quoteJQL(email))
	resp, err := c.SearchIssues(ctx, jql, nil)
	if err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// RecentIssues returns issues in a project updated within the last N days.
// An empty project means the configured default.
func (c *Client) RecentIssues(ctx context.Context, days int, projectKey string) ([]Issue, error) {
	if days <= 0 {
		days = 7
	}
	if projectKey == "" {
		projectKey = c.cfg.ProjectKey
	}
	jql := fmt.Sprintf("project = %s AND updated >= -%sd ORDER BY updated DESC",
		projectKey, strconv.Itoa(days))
	resp, err := c.SearchIssues(ctx, jql, nil)
	if err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// BulkResult is the outcome of one issue in a bulk create.
type BulkResult struct {
	Key string
	Err error
}

// BulkCreateIssues creates multiple issues sequentially. A failed create
// does not stop the rest; each result carries its own error.
func (c *Client) BulkCreateIssues(ctx context.Context, issues []CreateIssueParams) []BulkResult {
	results := make([]BulkResult, 0, len(issues))
	for _, params := range issues {
		created, err := c.CreateIssue(ctx, params)
		if err != nil {
			c.logger.Error("bulk create failed",
				slog.String("summary", params.Summary),
				slog.String("error", err.Error()))
			results = append(results, BulkResult{Err: err})
			continue
		}
		results = append(results, BulkResult{Key: created.Key})
	}
	return results
}

// quoteJQL quotes a JQL string value.
func quoteJQL(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
