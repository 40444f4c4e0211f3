package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// ComponentsClient implements qapi.ComponentsClient.
type ComponentsClient struct {
	httpClient *http.Client
}

// NewComponentsClient creates a new components client.
func NewComponentsClient(httpClient *http.Client) *ComponentsClient {
	return &ComponentsClient{
		httpClient: httpClient,
	}
}

// Show implements qapi.ComponentsClient.Show.
func (c *ComponentsClient) Show(ctx context.Context, key string) (*qapi.Component, error) {
	query := url.Values{}
	query.Set("component", key)

	resp, err := c.httpClient.Get(ctx, "/api/components/show", query)
	if err != nil {
		return nil, fmt.Errorf("getting component: %w", err)
	}

	var envelope struct {
		Component qapi.Component `json:"component"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing component response: %w", err)
	}

	return &envelope.Component, nil
}

// Search implements qapi.ComponentsClient.Search.
func (c *ComponentsClient) Search() *qapi.ComponentSearch {
	return qapi.NewComponentSearch(newSearchExecutor[qapi.Component](c.httpClient, "/api/components/search", "components"))
}

// Tree implements qapi.ComponentsClient.Tree.
func (c *ComponentsClient) Tree(componentKey string) *qapi.ComponentTreeSearch {
	search := qapi.NewComponentTreeSearch(newSearchExecutor[qapi.Component](c.httpClient, "/api/components/tree", "components"))
	search.Set("component", componentKey)

	return search
}
