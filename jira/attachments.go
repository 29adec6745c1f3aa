package jira

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mwhitfield/jiractl/rest"
)

// AttachFile uploads a local file as an attachment to an issue.
func (c *Client) AttachFile(ctx context.Context, key, path string) ([]Attachment, error) {
	if err := checkIssueKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	return c.AttachReader(ctx, key, filepath.Base(path), f)
}

// AttachReader uploads reader contents as a named attachment to an issue.
func (c *Client) AttachReader(ctx context.Context, key, filename string, r io.Reader) ([]Attachment, error) {
	if err := checkIssueKey(key); err != nil {
		return nil, err
	}

	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}

	c.logger.Info("uploading attachment",
		slog.String("key", key),
		slog.String("filename", filename),
		slog.Int("bytes", len(contents)))

	var attachments []Attachment
	err = c.rest.Upload(ctx, apiPath("/issue/"+key+"/attachments"), "file", filename, contents, &attachments)
	if err != nil {
		if rest.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrIssueNotFound, key)
		}
		return nil, err
	}
	return attachments, nil
}
