package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/qubelint-io/qapi-client/internal/constants"
	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// MeasuresClient implements qapi.MeasuresClient.
type MeasuresClient struct {
	httpClient *http.Client
}

// NewMeasuresClient creates a new measures client.
func NewMeasuresClient(httpClient *http.Client) *MeasuresClient {
	return &MeasuresClient{
		httpClient: httpClient,
	}
}

// Component implements qapi.MeasuresClient.Component.
func (c *MeasuresClient) Component(ctx context.Context, componentKey string, metricKeys []string) (*qapi.Component, error) {
	query := url.Values{}
	query.Set("component", componentKey)
	query.Set("metricKeys", strings.Join(metricKeys, ","))

	resp, err := c.httpClient.Get(ctx, "/api/measures/component", query)
	if err != nil {
		return nil, fmt.Errorf("getting component measures: %w", err)
	}

	var envelope struct {
		Component qapi.Component `json:"component"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing component measures response: %w", err)
	}

	return &envelope.Component, nil
}

// ComponentTree implements qapi.MeasuresClient.ComponentTree.
func (c *MeasuresClient) ComponentTree(componentKey string, metricKeys ...string) *qapi.ComponentTreeSearch {
	search := qapi.NewComponentTreeSearch(newSearchExecutor[qapi.Component](c.httpClient, "/api/measures/component_tree", "components"))
	search.Set("component", componentKey)

	if len(metricKeys) > 0 {
		search.MetricKeys(metricKeys...)
	}

	return search
}

// History implements qapi.MeasuresClient.History.
func (c *MeasuresClient) History(ctx context.Context, componentKey string, metricKeys []string) ([]qapi.MeasureHistoryEntry, error) {
	query := url.Values{}
	query.Set("component", componentKey)
	query.Set("metrics", strings.Join(metricKeys, ","))
	query.Set("ps", fmt.Sprint(constants.MaxPageSize))

	resp, err := c.httpClient.Get(ctx, "/api/measures/search_history", query)
	if err != nil {
		return nil, fmt.Errorf("getting measure history: %w", err)
	}

	var envelope struct {
		Measures []qapi.MeasureHistoryEntry `json:"measures"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing measure history response: %w", err)
	}

	return envelope.Measures, nil
}
