package client

import (
	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// AuditLogsClient implements qapi.AuditLogsClient.
type AuditLogsClient struct {
	httpClient *http.Client
}

// NewAuditLogsClient creates a new audit logs client.
func NewAuditLogsClient(httpClient *http.Client) *AuditLogsClient {
	return &AuditLogsClient{
		httpClient: httpClient,
	}
}

// Search implements qapi.AuditLogsClient.Search. This endpoint is newer than
// the rest of the API and paginates with page/pageSize, which the builder is
// already configured for.
func (c *AuditLogsClient) Search() *qapi.AuditLogSearch {
	return qapi.NewAuditLogSearch(newSearchExecutor[qapi.AuditEvent](c.httpClient, "/api/audit_logs/search", "auditLogs"))
}
