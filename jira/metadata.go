package jira

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mwhitfield/jiractl/rest"
)

// GetProject retrieves a project by key.
func (c *Client) GetProject(ctx context.Context, key string) (*Project, error) {
	if key == "" {
		key = c.cfg.ProjectKey
	}

	var project Project
	if err := c.rest.Get(ctx, apiPath("/project/"+key), nil, &project); err != nil {
		if rest.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, key)
		}
		return nil, err
	}
	return &project, nil
}

// GetIssueTypes returns the issue types available in a project.
func (c *Client) GetIssueTypes(ctx context.Context, projectKey string) ([]IssueType, error) {
	project, err := c.GetProject(ctx, projectKey)
	if err != nil {
		return nil, err
	}
	return project.IssueTypes, nil
}

// GetPriorities returns the priorities defined on the Jira site.
func (c *Client) GetPriorities(ctx context.Context) ([]Priority, error) {
	var priorities []Priority
	if err := c.rest.Get(ctx, apiPath("/priority"), nil, &priorities); err != nil {
		return nil, err
	}
	return priorities, nil
}

// GetStatuses returns the statuses for a project, grouped by issue type.
// Sites that refuse project-level status access fall back to the global
// status list under a single unnamed group.
func (c *Client) GetStatuses(ctx context.Context, projectKey string) ([]StatusGroup, error) {
	if projectKey == "" {
		projectKey = c.cfg.ProjectKey
	}

	var groups []StatusGroup
	err := c.rest.Get(ctx, apiPath("/project/"+projectKey+"/statuses"), nil, &groups)
	if err == nil {
		return groups, nil
	}
	if !rest.IsNotFound(err) && !rest.IsForbidden(err) {
		return nil, err
	}

	c.logger.Debug("project statuses unavailable, using global list",
		slog.String("project", projectKey),
		slog.String("error", err.Error()))

	var statuses []Status
	if err := c.rest.Get(ctx, apiPath("/status"), nil, &statuses); err != nil {
		return nil, err
	}
	return []StatusGroup{{Statuses: statuses}}, nil
}

// AccountIDForEmail resolves an email address to an Atlassian account ID.
// The user search endpoint is tried first; sites with restricted user
// visibility fall back to the user picker.
func (c *Client) AccountIDForEmail(ctx context.Context, email string) (string, error) {
	var users []User
	err := c.rest.Get(ctx, apiPath("/user/search"), url.Values{"query": {email}}, &users)
	if err == nil && len(users) > 0 {
		return users[0].AccountID, nil
	}
	if err != nil {
		c.logger.Debug("user search failed, trying picker",
			slog.String("email", email),
			slog.String("error", err.Error()))
	}

	var picker struct {
		Users []struct {
			AccountID string `json:"accountId"`
		} `json:"users"`
	}
	query := url.Values{"query": {email}, "maxResults": {"1"}}
	if err := c.rest.Get(ctx, apiPath("/user/picker"), query, &picker); err != nil {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	if len(picker.Users) == 0 {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	return picker.Users[0].AccountID, nil
}
