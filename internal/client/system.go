package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// SystemClient implements qapi.SystemClient.
type SystemClient struct {
	httpClient *http.Client
}

// NewSystemClient creates a new system client.
func NewSystemClient(httpClient *http.Client) *SystemClient {
	return &SystemClient{
		httpClient: httpClient,
	}
}

// Status implements qapi.SystemClient.Status.
func (c *SystemClient) Status(ctx context.Context) (*qapi.SystemStatus, error) {
	resp, err := c.httpClient.Get(ctx, "/api/system/status", nil)
	if err != nil {
		return nil, fmt.Errorf("getting system status: %w", err)
	}

	var status qapi.SystemStatus

	err = json.Unmarshal(resp.Body, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing system status response: %w", err)
	}

	return &status, nil
}

// Health implements qapi.SystemClient.Health.
func (c *SystemClient) Health(ctx context.Context) (*qapi.SystemHealth, error) {
	resp, err := c.httpClient.Get(ctx, "/api/system/health", nil)
	if err != nil {
		return nil, fmt.Errorf("getting system health: %w", err)
	}

	var health qapi.SystemHealth

	err = json.Unmarshal(resp.Body, &health)
	if err != nil {
		return nil, fmt.Errorf("parsing system health response: %w", err)
	}

	return &health, nil
}

// Ping implements qapi.SystemClient.Ping. The endpoint answers with plain
// text, reachability is all that matters.
func (c *SystemClient) Ping(ctx context.Context) error {
	_, err := c.httpClient.Get(ctx, "/api/system/ping", nil)
	if err != nil {
		return fmt.Errorf("pinging server: %w", err)
	}

	return nil
}
