package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// HotspotsClient implements qapi.HotspotsClient.
type HotspotsClient struct {
	httpClient *http.Client
}

// NewHotspotsClient creates a new hotspots client.
func NewHotspotsClient(httpClient *http.Client) *HotspotsClient {
	return &HotspotsClient{
		httpClient: httpClient,
	}
}

// Search implements qapi.HotspotsClient.Search.
func (c *HotspotsClient) Search() *qapi.HotspotSearch {
	return qapi.NewHotspotSearch(newSearchExecutor[qapi.Hotspot](c.httpClient, "/api/hotspots/search", "hotspots"))
}

// Show implements qapi.HotspotsClient.Show.
func (c *HotspotsClient) Show(ctx context.Context, hotspotKey string) (*qapi.Hotspot, error) {
	query := url.Values{}
	query.Set("hotspot", hotspotKey)

	resp, err := c.httpClient.Get(ctx, "/api/hotspots/show", query)
	if err != nil {
		return nil, fmt.Errorf("getting hotspot: %w", err)
	}

	var hotspot qapi.Hotspot

	err = json.Unmarshal(resp.Body, &hotspot)
	if err != nil {
		return nil, fmt.Errorf("parsing hotspot response: %w", err)
	}

	return &hotspot, nil
}

// ChangeStatus implements qapi.HotspotsClient.ChangeStatus.
func (c *HotspotsClient) ChangeStatus(ctx context.Context, hotspotKey, status, resolution string) error {
	form := url.Values{}
	form.Set("hotspot", hotspotKey)
	form.Set("status", status)

	if resolution != "" {
		form.Set("resolution", resolution)
	}

	_, err := c.httpClient.PostForm(ctx, "/api/hotspots/change_status", form)
	if err != nil {
		return fmt.Errorf("changing hotspot status: %w", err)
	}

	return nil
}
