package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qubelint-io/qapi-client/internal/client"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotspotsClient_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/hotspots/search", request.URL.Path)
		assert.Equal(t, "payment-api", request.URL.Query().Get("projectKey"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"paging": map[string]int{"pageIndex": 1, "pageSize": 100, "total": 1},
			"hotspots": []map[string]interface{}{
				{
					"key":                      "HX-1",
					"component":                "payment-api:cmd/server/main.go",
					"project":                  "payment-api",
					"securityCategory":         "sql-injection",
					"vulnerabilityProbability": "HIGH",
					"status":                   "TO_REVIEW",
					"message":                  "Make sure this SQL query is safe",
				},
			},
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	page, err := c.Hotspots().Search().ProjectKey("payment-api").Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "HX-1", page.Items[0].Key)
	assert.Equal(t, "TO_REVIEW", page.Items[0].Status)
}

func TestHotspotsClient_SearchConflictingSelectors(t *testing.T) {
	t.Parallel()

	c := client.NewTestClient("http://127.0.0.1:1")

	_, err := c.Hotspots().Search().
		ProjectKey("payment-api").
		Hotspots("HX-1").
		Execute(context.Background())
	require.ErrorIs(t, err, qapi.ErrConflictingParameters)
}

func TestHotspotsClient_Show(t *testing.T) {
	t.Parallel()

	server := client.NewJSONServer(t, "GET", "/api/hotspots/show", http.StatusOK, map[string]interface{}{
		"key":                      "HX-1",
		"project":                  "payment-api",
		"securityCategory":         "sql-injection",
		"vulnerabilityProbability": "HIGH",
		"status":                   "TO_REVIEW",
		"message":                  "Make sure this SQL query is safe",
	})
	defer server.Close()

	c := client.NewTestClient(server.URL)

	hotspot, err := c.Hotspots().Show(context.Background(), "HX-1")
	require.NoError(t, err)
	assert.Equal(t, "HX-1", hotspot.Key)
	assert.Equal(t, "sql-injection", hotspot.SecurityCategory)
}

func TestHotspotsClient_ChangeStatus(t *testing.T) {
	t.Parallel()

	server := client.NewFormServer(t, "/api/hotspots/change_status", map[string]string{
		"hotspot":    "HX-1",
		"status":     "REVIEWED",
		"resolution": "SAFE",
	}, http.StatusNoContent, nil)
	defer server.Close()

	c := client.NewTestClient(server.URL)

	require.NoError(t, c.Hotspots().ChangeStatus(context.Background(), "HX-1", "REVIEWED", "SAFE"))
}
