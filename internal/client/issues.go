package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// IssuesClient implements qapi.IssuesClient.
type IssuesClient struct {
	httpClient *http.Client
}

// NewIssuesClient creates a new issues client.
func NewIssuesClient(httpClient *http.Client) *IssuesClient {
	return &IssuesClient{
		httpClient: httpClient,
	}
}

// Search implements qapi.IssuesClient.Search.
func (c *IssuesClient) Search() *qapi.IssueSearch {
	return qapi.NewIssueSearch(newSearchExecutor[qapi.Issue](c.httpClient, "/api/issues/search", "issues"))
}

// Assign implements qapi.IssuesClient.Assign.
func (c *IssuesClient) Assign(ctx context.Context, issueKey, assignee string) (*qapi.Issue, error) {
	form := url.Values{}
	form.Set("issue", issueKey)
	form.Set("assignee", assignee)

	return c.postIssueAction(ctx, "/api/issues/assign", form, "assigning issue")
}

// DoTransition implements qapi.IssuesClient.DoTransition.
func (c *IssuesClient) DoTransition(ctx context.Context, issueKey, transition string) (*qapi.Issue, error) {
	form := url.Values{}
	form.Set("issue", issueKey)
	form.Set("transition", transition)

	return c.postIssueAction(ctx, "/api/issues/do_transition", form, "transitioning issue")
}

// SetSeverity implements qapi.IssuesClient.SetSeverity.
func (c *IssuesClient) SetSeverity(ctx context.Context, issueKey, severity string) (*qapi.Issue, error) {
	form := url.Values{}
	form.Set("issue", issueKey)
	form.Set("severity", severity)

	return c.postIssueAction(ctx, "/api/issues/set_severity", form, "setting issue severity")
}

// SetTags implements qapi.IssuesClient.SetTags.
func (c *IssuesClient) SetTags(ctx context.Context, issueKey string, tags []string) (*qapi.Issue, error) {
	form := url.Values{}
	form.Set("issue", issueKey)
	form.Set("tags", strings.Join(tags, ","))

	return c.postIssueAction(ctx, "/api/issues/set_tags", form, "setting issue tags")
}

// AddComment implements qapi.IssuesClient.AddComment.
func (c *IssuesClient) AddComment(ctx context.Context, issueKey, text string) (*qapi.Issue, error) {
	form := url.Values{}
	form.Set("issue", issueKey)
	form.Set("text", text)

	return c.postIssueAction(ctx, "/api/issues/add_comment", form, "commenting on issue")
}

// postIssueAction runs one of the issue write endpoints; they all return the
// updated issue under the same envelope.
func (c *IssuesClient) postIssueAction(ctx context.Context, path string, form url.Values, action string) (*qapi.Issue, error) {
	resp, err := c.httpClient.PostForm(ctx, path, form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	var envelope struct {
		Issue qapi.Issue `json:"issue"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing issue response: %w", err)
	}

	return &envelope.Issue, nil
}
