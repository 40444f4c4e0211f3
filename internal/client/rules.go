package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// RulesClient implements qapi.RulesClient.
type RulesClient struct {
	httpClient *http.Client
}

// NewRulesClient creates a new rules client.
func NewRulesClient(httpClient *http.Client) *RulesClient {
	return &RulesClient{
		httpClient: httpClient,
	}
}

// Search implements qapi.RulesClient.Search.
func (c *RulesClient) Search() *qapi.RuleSearch {
	return qapi.NewRuleSearch(newSearchExecutor[qapi.Rule](c.httpClient, "/api/rules/search", "rules"))
}

// Show implements qapi.RulesClient.Show.
func (c *RulesClient) Show(ctx context.Context, ruleKey string) (*qapi.Rule, error) {
	query := url.Values{}
	query.Set("key", ruleKey)

	resp, err := c.httpClient.Get(ctx, "/api/rules/show", query)
	if err != nil {
		return nil, fmt.Errorf("getting rule: %w", err)
	}

	var envelope struct {
		Rule qapi.Rule `json:"rule"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing rule response: %w", err)
	}

	return &envelope.Rule, nil
}

// Repositories implements qapi.RulesClient.Repositories.
func (c *RulesClient) Repositories(ctx context.Context, language string) ([]qapi.RuleRepository, error) {
	query := url.Values{}
	if language != "" {
		query.Set("language", language)
	}

	resp, err := c.httpClient.Get(ctx, "/api/rules/repositories", query)
	if err != nil {
		return nil, fmt.Errorf("listing rule repositories: %w", err)
	}

	var envelope struct {
		Repositories []qapi.RuleRepository `json:"repositories"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing rule repositories response: %w", err)
	}

	return envelope.Repositories, nil
}
