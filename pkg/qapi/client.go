package qapi

import (
	"context"
	"time"
)

// ProjectsClient manages projects.
type ProjectsClient interface {
	Search() *ProjectSearch
	Create(ctx context.Context, request *ProjectCreateRequest) (*Project, error)
	Delete(ctx context.Context, key string) error
	UpdateKey(ctx context.Context, from, to string) error
	UpdateVisibility(ctx context.Context, key, visibility string) error
}

// ComponentsClient navigates the component tree.
type ComponentsClient interface {
	Show(ctx context.Context, key string) (*Component, error)
	Search() *ComponentSearch
	Tree(componentKey string) *ComponentTreeSearch
}

// IssuesClient searches and transitions issues.
type IssuesClient interface {
	Search() *IssueSearch
	Assign(ctx context.Context, issueKey, assignee string) (*Issue, error)
	DoTransition(ctx context.Context, issueKey, transition string) (*Issue, error)
	SetSeverity(ctx context.Context, issueKey, severity string) (*Issue, error)
	SetTags(ctx context.Context, issueKey string, tags []string) (*Issue, error)
	AddComment(ctx context.Context, issueKey, text string) (*Issue, error)
}

// HotspotsClient reviews security hotspots.
type HotspotsClient interface {
	Search() *HotspotSearch
	Show(ctx context.Context, hotspotKey string) (*Hotspot, error)
	ChangeStatus(ctx context.Context, hotspotKey, status, resolution string) error
}

// RulesClient inspects rule definitions.
type RulesClient interface {
	Search() *RuleSearch
	Show(ctx context.Context, ruleKey string) (*Rule, error)
	Repositories(ctx context.Context, language string) ([]RuleRepository, error)
}

// QualityGatesClient manages quality gates and their project bindings.
type QualityGatesClient interface {
	List(ctx context.Context) ([]QualityGate, error)
	Show(ctx context.Context, name string) (*QualityGate, error)
	Create(ctx context.Context, name string) (*QualityGate, error)
	Destroy(ctx context.Context, name string) error
	Select(ctx context.Context, gateName, projectKey string) error
	GetByProject(ctx context.Context, projectKey string) (*QualityGate, error)
	ProjectStatus(ctx context.Context, projectKey string) (*QualityGateStatus, error)
}

// MeasuresClient reads metric values.
type MeasuresClient interface {
	Component(ctx context.Context, componentKey string, metricKeys []string) (*Component, error)
	ComponentTree(componentKey string, metricKeys ...string) *ComponentTreeSearch
	History(ctx context.Context, componentKey string, metricKeys []string) ([]MeasureHistoryEntry, error)
}

// SourcesClient reads file content.
type SourcesClient interface {
	Raw(ctx context.Context, fileKey string) (string, error)
	Show(ctx context.Context, fileKey string, from, to int) ([]SourceLine, error)
	SCM(ctx context.Context, fileKey string, from, to int) ([]SCMLine, error)
}

// UsersClient administers user accounts.
type UsersClient interface {
	Search() *UserSearch
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
	Deactivate(ctx context.Context, login string) error
	// UpdateLogin always fails with a RemovedAPI error: the endpoint was
	// dropped by the platform in favor of the v2 users-management API.
	UpdateLogin(ctx context.Context, login, newLogin string) error
}

// WebhooksClient manages webhooks and inspects their deliveries.
type WebhooksClient interface {
	List(ctx context.Context, projectKey string) ([]Webhook, error)
	Create(ctx context.Context, request *WebhookCreateRequest) (*Webhook, error)
	Delete(ctx context.Context, webhookKey string) error
	Deliveries() *WebhookDeliverySearch
}

// AuditLogsClient reads the instance audit trail.
type AuditLogsClient interface {
	Search() *AuditLogSearch
}

// SystemClient reads instance health and lifecycle state.
type SystemClient interface {
	Status(ctx context.Context) (*SystemStatus, error)
	Health(ctx context.Context) (*SystemHealth, error)
	Ping(ctx context.Context) error
}

// AnalysisClients groups the clients that read analysis results.
type AnalysisClients interface {
	Projects() ProjectsClient
	Components() ComponentsClient
	Issues() IssuesClient
	Hotspots() HotspotsClient
	Measures() MeasuresClient
	Sources() SourcesClient
}

// ConfigurationClients groups the clients that manage analysis configuration.
type ConfigurationClients interface {
	Rules() RulesClient
	QualityGates() QualityGatesClient
	Webhooks() WebhooksClient
}

// AdministrationClients groups instance administration clients.
type AdministrationClients interface {
	Users() UsersClient
	AuditLogs() AuditLogsClient
	System() SystemClient
}

// Client aggregates every resource client. It is pure composition: each
// accessor returns an independent resource client sharing the same
// transport.
type Client interface {
	AnalysisClients
	ConfigurationClients
	AdministrationClients
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config carries the settings for building a Client.
//
// Authentication: a user token (Token) is sent as a Bearer header. When only
// Username/Password are set, HTTP basic auth is used instead. With neither,
// requests go out anonymously (public endpoints only).
//
// Timeouts are generally controlled via the context passed to client
// methods; RetryMax/RetryWaitMin/RetryWaitMax tune the transport's simple
// retry wrapper for transient failures (5xx, 429, connection errors).
type Config struct {
	// ServerURL is the base URL of the platform (e.g.
	// "https://quality.example.com"). A missing scheme defaults to https,
	// a trailing slash is trimmed.
	ServerURL string

	// Token is a user token sent as a Bearer credential.
	Token string
	// Username and Password select HTTP basic auth when Token is empty.
	Username string
	Password string

	// HTTPTimeout is an optional default timeout used by helpers; most
	// calls should rely on context deadlines.
	HTTPTimeout time.Duration
	// RetryMax is the maximum number of retries for transient failures.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is set.
	Debug bool
	// Logger receives structured transport logs.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Interceptors optionally hook into every request and response.
	Interceptors *InterceptorChain
}

// ProjectCreateRequest is the payload for creating a project.
type ProjectCreateRequest struct {
	Key        string `json:"project"              yaml:"project"`
	Name       string `json:"name"                 yaml:"name"`
	Visibility string `json:"visibility,omitempty" yaml:"visibility,omitempty"`
}

// UserCreateRequest is the payload for creating a user account.
type UserCreateRequest struct {
	Login    string `json:"login"              yaml:"login"`
	Name     string `json:"name"               yaml:"name"`
	Email    string `json:"email,omitempty"    yaml:"email,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Local    bool   `json:"local"              yaml:"local"`
}

// WebhookCreateRequest is the payload for registering a webhook.
type WebhookCreateRequest struct {
	Name       string `json:"name"                 yaml:"name"`
	URL        string `json:"url"                  yaml:"url"`
	ProjectKey string `json:"project,omitempty"    yaml:"project,omitempty"`
	Secret     string `json:"secret,omitempty"     yaml:"secret,omitempty"`
}
