package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// WebhooksClient implements qapi.WebhooksClient.
type WebhooksClient struct {
	httpClient *http.Client
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(httpClient *http.Client) *WebhooksClient {
	return &WebhooksClient{
		httpClient: httpClient,
	}
}

// List implements qapi.WebhooksClient.List. An empty projectKey lists the
// global webhooks.
func (c *WebhooksClient) List(ctx context.Context, projectKey string) ([]qapi.Webhook, error) {
	query := url.Values{}
	if projectKey != "" {
		query.Set("project", projectKey)
	}

	resp, err := c.httpClient.Get(ctx, "/api/webhooks/list", query)
	if err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}

	var envelope struct {
		Webhooks []qapi.Webhook `json:"webhooks"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing webhooks response: %w", err)
	}

	return envelope.Webhooks, nil
}

// Create implements qapi.WebhooksClient.Create.
func (c *WebhooksClient) Create(ctx context.Context, request *qapi.WebhookCreateRequest) (*qapi.Webhook, error) {
	form := url.Values{}
	form.Set("name", request.Name)
	form.Set("url", request.URL)

	if request.ProjectKey != "" {
		form.Set("project", request.ProjectKey)
	}

	if request.Secret != "" {
		form.Set("secret", request.Secret)
	}

	resp, err := c.httpClient.PostForm(ctx, "/api/webhooks/create", form)
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}

	var envelope struct {
		Webhook qapi.Webhook `json:"webhook"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing webhook response: %w", err)
	}

	return &envelope.Webhook, nil
}

// Delete implements qapi.WebhooksClient.Delete.
func (c *WebhooksClient) Delete(ctx context.Context, webhookKey string) error {
	form := url.Values{}
	form.Set("webhook", webhookKey)

	_, err := c.httpClient.PostForm(ctx, "/api/webhooks/delete", form)
	if err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}

	return nil
}

// Deliveries implements qapi.WebhooksClient.Deliveries.
func (c *WebhooksClient) Deliveries() *qapi.WebhookDeliverySearch {
	return qapi.NewWebhookDeliverySearch(newSearchExecutor[qapi.WebhookDelivery](c.httpClient, "/api/webhooks/deliveries", "deliveries"))
}
