// Package client contains the concrete resource clients behind the qapi
// interfaces. They share one HTTP transport.
package client

import (
	"time"

	"github.com/qubelint-io/qapi-client/internal/auth"
	"github.com/qubelint-io/qapi-client/internal/constants"
	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// Client implements the qapi.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       qapi.Logger

	// Resource clients
	projects     qapi.ProjectsClient
	components   qapi.ComponentsClient
	issues       qapi.IssuesClient
	hotspots     qapi.HotspotsClient
	rules        qapi.RulesClient
	qualityGates qapi.QualityGatesClient
	measures     qapi.MeasuresClient
	sources      qapi.SourcesClient
	users        qapi.UsersClient
	webhooks     qapi.WebhooksClient
	auditLogs    qapi.AuditLogsClient
	system       qapi.SystemClient
}

// New creates a client for the configured server.
func New(config *qapi.Config) (*Client, error) {
	if config.ServerURL == "" {
		return nil, qapi.ErrServerURLRequired
	}

	tokenManager := createTokenManager(config)
	httpOpts := createHTTPClientOptions(config, tokenManager)
	httpClient := http.NewClient(config.ServerURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.ServerURL,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a client using a caller-supplied token manager.
func NewWithTokenManager(config *qapi.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.ServerURL == "" {
		return nil, qapi.ErrServerURLRequired
	}

	httpOpts := createHTTPClientOptions(config, tokenManager)
	httpClient := http.NewClient(config.ServerURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.ServerURL,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createTokenManager picks the credential source based on config.
func createTokenManager(config *qapi.Config) auth.TokenManager {
	if config.Token != "" {
		return auth.NewStaticTokenManager(config.Token)
	}

	return nil // Basic or anonymous, handled at the transport
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *qapi.Config, tokenManager auth.TokenManager) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if tokenManager == nil && config.Username != "" {
		httpOpts = append(httpOpts, http.WithBasicAuth(config.Username, config.Password))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := config.RetryWaitMin
		if retryWaitMin <= 0 {
			retryWaitMin = 1 * time.Second
		}

		retryWaitMax := config.RetryWaitMax
		if retryWaitMax <= 0 {
			retryWaitMax = constants.DefaultRetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Resource client accessors

// Projects implements qapi.Client.Projects.
func (c *Client) Projects() qapi.ProjectsClient {
	return c.projects
}

// Components implements qapi.Client.Components.
func (c *Client) Components() qapi.ComponentsClient {
	return c.components
}

// Issues implements qapi.Client.Issues.
func (c *Client) Issues() qapi.IssuesClient {
	return c.issues
}

// Hotspots implements qapi.Client.Hotspots.
func (c *Client) Hotspots() qapi.HotspotsClient {
	return c.hotspots
}

// Rules implements qapi.Client.Rules.
func (c *Client) Rules() qapi.RulesClient {
	return c.rules
}

// QualityGates implements qapi.Client.QualityGates.
func (c *Client) QualityGates() qapi.QualityGatesClient {
	return c.qualityGates
}

// Measures implements qapi.Client.Measures.
func (c *Client) Measures() qapi.MeasuresClient {
	return c.measures
}

// Sources implements qapi.Client.Sources.
func (c *Client) Sources() qapi.SourcesClient {
	return c.sources
}

// Users implements qapi.Client.Users.
func (c *Client) Users() qapi.UsersClient {
	return c.users
}

// Webhooks implements qapi.Client.Webhooks.
func (c *Client) Webhooks() qapi.WebhooksClient {
	return c.webhooks
}

// AuditLogs implements qapi.Client.AuditLogs.
func (c *Client) AuditLogs() qapi.AuditLogsClient {
	return c.auditLogs
}

// System implements qapi.Client.System.
func (c *Client) System() qapi.SystemClient {
	return c.system
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.projects = NewProjectsClient(c.httpClient)
	c.components = NewComponentsClient(c.httpClient)
	c.issues = NewIssuesClient(c.httpClient)
	c.hotspots = NewHotspotsClient(c.httpClient)
	c.rules = NewRulesClient(c.httpClient)
	c.qualityGates = NewQualityGatesClient(c.httpClient)
	c.measures = NewMeasuresClient(c.httpClient)
	c.sources = NewSourcesClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.webhooks = NewWebhooksClient(c.httpClient)
	c.auditLogs = NewAuditLogsClient(c.httpClient)
	c.system = NewSystemClient(c.httpClient)
}
