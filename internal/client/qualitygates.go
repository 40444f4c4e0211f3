package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// QualityGatesClient implements qapi.QualityGatesClient.
type QualityGatesClient struct {
	httpClient *http.Client
}

// NewQualityGatesClient creates a new quality gates client.
func NewQualityGatesClient(httpClient *http.Client) *QualityGatesClient {
	return &QualityGatesClient{
		httpClient: httpClient,
	}
}

// List implements qapi.QualityGatesClient.List.
func (c *QualityGatesClient) List(ctx context.Context) ([]qapi.QualityGate, error) {
	resp, err := c.httpClient.Get(ctx, "/api/qualitygates/list", nil)
	if err != nil {
		return nil, fmt.Errorf("listing quality gates: %w", err)
	}

	var envelope struct {
		QualityGates []qapi.QualityGate `json:"qualitygates"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing quality gates response: %w", err)
	}

	return envelope.QualityGates, nil
}

// Show implements qapi.QualityGatesClient.Show.
func (c *QualityGatesClient) Show(ctx context.Context, name string) (*qapi.QualityGate, error) {
	query := url.Values{}
	query.Set("name", name)

	resp, err := c.httpClient.Get(ctx, "/api/qualitygates/show", query)
	if err != nil {
		return nil, fmt.Errorf("getting quality gate: %w", err)
	}

	var gate qapi.QualityGate

	err = json.Unmarshal(resp.Body, &gate)
	if err != nil {
		return nil, fmt.Errorf("parsing quality gate response: %w", err)
	}

	return &gate, nil
}

// Create implements qapi.QualityGatesClient.Create.
func (c *QualityGatesClient) Create(ctx context.Context, name string) (*qapi.QualityGate, error) {
	form := url.Values{}
	form.Set("name", name)

	resp, err := c.httpClient.PostForm(ctx, "/api/qualitygates/create", form)
	if err != nil {
		return nil, fmt.Errorf("creating quality gate: %w", err)
	}

	var gate qapi.QualityGate

	err = json.Unmarshal(resp.Body, &gate)
	if err != nil {
		return nil, fmt.Errorf("parsing quality gate response: %w", err)
	}

	return &gate, nil
}

// Destroy implements qapi.QualityGatesClient.Destroy.
func (c *QualityGatesClient) Destroy(ctx context.Context, name string) error {
	form := url.Values{}
	form.Set("name", name)

	_, err := c.httpClient.PostForm(ctx, "/api/qualitygates/destroy", form)
	if err != nil {
		return fmt.Errorf("destroying quality gate: %w", err)
	}

	return nil
}

// Select implements qapi.QualityGatesClient.Select.
func (c *QualityGatesClient) Select(ctx context.Context, gateName, projectKey string) error {
	form := url.Values{}
	form.Set("gateName", gateName)
	form.Set("projectKey", projectKey)

	_, err := c.httpClient.PostForm(ctx, "/api/qualitygates/select", form)
	if err != nil {
		return fmt.Errorf("selecting quality gate: %w", err)
	}

	return nil
}

// GetByProject implements qapi.QualityGatesClient.GetByProject. It returns
// the gate currently associated with the project, default or explicit.
func (c *QualityGatesClient) GetByProject(ctx context.Context, projectKey string) (*qapi.QualityGate, error) {
	query := url.Values{}
	query.Set("project", projectKey)

	resp, err := c.httpClient.Get(ctx, "/api/qualitygates/get_by_project", query)
	if err != nil {
		return nil, fmt.Errorf("getting quality gate for project: %w", err)
	}

	var envelope struct {
		QualityGate qapi.QualityGate `json:"qualityGate"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing quality gate response: %w", err)
	}

	return &envelope.QualityGate, nil
}

// ProjectStatus implements qapi.QualityGatesClient.ProjectStatus.
func (c *QualityGatesClient) ProjectStatus(ctx context.Context, projectKey string) (*qapi.QualityGateStatus, error) {
	query := url.Values{}
	query.Set("projectKey", projectKey)

	resp, err := c.httpClient.Get(ctx, "/api/qualitygates/project_status", query)
	if err != nil {
		return nil, fmt.Errorf("getting quality gate status: %w", err)
	}

	var envelope struct {
		ProjectStatus qapi.QualityGateStatus `json:"projectStatus"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing quality gate status response: %w", err)
	}

	return &envelope.ProjectStatus, nil
}
