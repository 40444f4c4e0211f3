package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/qubelint-io/qapi-client/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogsClient_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/audit_logs/search", request.URL.Path)

		query := request.URL.Query()
		assert.Equal(t, "USER", query.Get("category"))
		assert.Equal(t, "2026-08-01T00:00:00Z", query.Get("from"))

		// This endpoint paginates with page/pageSize, not p/ps.
		assert.Equal(t, "1", query.Get("page"))
		assert.Equal(t, "25", query.Get("pageSize"))
		assert.False(t, query.Has("p"))
		assert.False(t, query.Has("ps"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"paging": map[string]int{"pageIndex": 1, "pageSize": 25, "total": 1},
			"auditLogs": []map[string]interface{}{
				{
					"id":       "ae-1",
					"category": "USER",
					"action":   "USER_CREATED",
					"author":   "admin",
					"date":     "2026-08-20T09:30:00Z",
				},
			},
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	page, err := c.AuditLogs().Search().Category("USER").From(from).Page(1).PageSize(25).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "USER_CREATED", page.Items[0].Action)
	assert.Equal(t, "admin", page.Items[0].Author)
}

func TestAuditLogsClient_SearchAllPages(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		events := map[string][]map[string]interface{}{
			"1": {{"id": "ae-1", "category": "USER", "action": "USER_CREATED", "author": "admin", "date": "2026-08-20T09:30:00Z"}},
			"2": {{"id": "ae-2", "category": "USER", "action": "USER_DEACTIVATED", "author": "admin", "date": "2026-08-21T10:00:00Z"}},
		}

		pageIndex := request.URL.Query().Get("page")
		pageNumber, err := strconv.Atoi(pageIndex)
		require.NoError(t, err)

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"paging":    map[string]int{"pageIndex": pageNumber, "pageSize": 1, "total": 2},
			"auditLogs": events[pageIndex],
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	events, err := c.AuditLogs().Search().PageSize(1).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ae-2", events[1].ID)
}
