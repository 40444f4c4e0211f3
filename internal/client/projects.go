package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// ProjectsClient implements qapi.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

// Search implements qapi.ProjectsClient.Search.
func (c *ProjectsClient) Search() *qapi.ProjectSearch {
	return qapi.NewProjectSearch(newSearchExecutor[qapi.Project](c.httpClient, "/api/projects/search", "components"))
}

// Create implements qapi.ProjectsClient.Create.
func (c *ProjectsClient) Create(ctx context.Context, request *qapi.ProjectCreateRequest) (*qapi.Project, error) {
	form := url.Values{}
	form.Set("project", request.Key)
	form.Set("name", request.Name)

	if request.Visibility != "" {
		form.Set("visibility", request.Visibility)
	}

	resp, err := c.httpClient.PostForm(ctx, "/api/projects/create", form)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	var envelope struct {
		Project qapi.Project `json:"project"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return &envelope.Project, nil
}

// Delete implements qapi.ProjectsClient.Delete.
func (c *ProjectsClient) Delete(ctx context.Context, key string) error {
	form := url.Values{}
	form.Set("project", key)

	_, err := c.httpClient.PostForm(ctx, "/api/projects/delete", form)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	return nil
}

// UpdateKey implements qapi.ProjectsClient.UpdateKey.
func (c *ProjectsClient) UpdateKey(ctx context.Context, from, to string) error {
	form := url.Values{}
	form.Set("from", from)
	form.Set("to", to)

	_, err := c.httpClient.PostForm(ctx, "/api/projects/update_key", form)
	if err != nil {
		return fmt.Errorf("updating project key: %w", err)
	}

	return nil
}

// UpdateVisibility implements qapi.ProjectsClient.UpdateVisibility.
func (c *ProjectsClient) UpdateVisibility(ctx context.Context, key, visibility string) error {
	form := url.Values{}
	form.Set("project", key)
	form.Set("visibility", visibility)

	_, err := c.httpClient.PostForm(ctx, "/api/projects/update_visibility", form)
	if err != nil {
		return fmt.Errorf("updating project visibility: %w", err)
	}

	return nil
}
