package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// SourcesClient implements qapi.SourcesClient.
type SourcesClient struct {
	httpClient *http.Client
}

// NewSourcesClient creates a new sources client.
func NewSourcesClient(httpClient *http.Client) *SourcesClient {
	return &SourcesClient{
		httpClient: httpClient,
	}
}

// Raw implements qapi.SourcesClient.Raw. The endpoint returns the file
// verbatim as plain text.
func (c *SourcesClient) Raw(ctx context.Context, fileKey string) (string, error) {
	query := url.Values{}
	query.Set("key", fileKey)

	resp, err := c.httpClient.Get(ctx, "/api/sources/raw", query)
	if err != nil {
		return "", fmt.Errorf("getting raw source: %w", err)
	}

	return string(resp.Body), nil
}

// Show implements qapi.SourcesClient.Show. Zero for from or to means the
// beginning or the end of the file.
func (c *SourcesClient) Show(ctx context.Context, fileKey string, from, to int) ([]qapi.SourceLine, error) {
	query := url.Values{}
	query.Set("key", fileKey)

	if from > 0 {
		query.Set("from", strconv.Itoa(from))
	}

	if to > 0 {
		query.Set("to", strconv.Itoa(to))
	}

	resp, err := c.httpClient.Get(ctx, "/api/sources/lines", query)
	if err != nil {
		return nil, fmt.Errorf("getting source lines: %w", err)
	}

	var envelope struct {
		Sources []qapi.SourceLine `json:"sources"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing source lines response: %w", err)
	}

	return envelope.Sources, nil
}

// SCM implements qapi.SourcesClient.SCM. Zero for from or to means the
// beginning or the end of the file.
func (c *SourcesClient) SCM(ctx context.Context, fileKey string, from, to int) ([]qapi.SCMLine, error) {
	query := url.Values{}
	query.Set("key", fileKey)

	if from > 0 {
		query.Set("from", strconv.Itoa(from))
	}

	if to > 0 {
		query.Set("to", strconv.Itoa(to))
	}

	resp, err := c.httpClient.Get(ctx, "/api/sources/scm", query)
	if err != nil {
		return nil, fmt.Errorf("getting scm info: %w", err)
	}

	var envelope struct {
		SCM []qapi.SCMLine `json:"scm"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing scm response: %w", err)
	}

	return envelope.SCM, nil
}
