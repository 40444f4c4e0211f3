package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qubelint-io/qapi-client/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentsClient_Show(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/components/show", request.URL.Path)
		assert.Equal(t, "payment-api:internal/refund.go", request.URL.Query().Get("component"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"component": map[string]interface{}{
				"key":       "payment-api:internal/refund.go",
				"name":      "refund.go",
				"qualifier": "FIL",
				"path":      "internal/refund.go",
				"language":  "go",
			},
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	component, err := c.Components().Show(context.Background(), "payment-api:internal/refund.go")
	require.NoError(t, err)
	assert.Equal(t, "refund.go", component.Name)
	assert.Equal(t, "go", component.Language)
}

func TestComponentsClient_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/components/search", request.URL.Path)

		query := request.URL.Query()
		assert.Equal(t, "refund", query.Get("q"))
		assert.Equal(t, "TRK,FIL", query.Get("qualifiers"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"paging": map[string]int{"pageIndex": 1, "pageSize": 100, "total": 1},
			"components": []map[string]interface{}{
				{"key": "payment-api", "name": "Payment API", "qualifier": "TRK"},
			},
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	page, err := c.Components().Search().Query("refund").Qualifiers("TRK", "FIL").Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "payment-api", page.Items[0].Key)
}

func TestComponentsClient_Tree(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/components/tree", request.URL.Path)

		query := request.URL.Query()
		assert.Equal(t, "payment-api", query.Get("component"))
		assert.Equal(t, "leaves", query.Get("strategy"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"paging": map[string]int{"pageIndex": 1, "pageSize": 100, "total": 2},
			"components": []map[string]interface{}{
				{"key": "payment-api:internal/refund.go", "name": "refund.go", "qualifier": "FIL"},
				{"key": "payment-api:internal/charge.go", "name": "charge.go", "qualifier": "FIL"},
			},
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	files, err := c.Components().Tree("payment-api").Strategy("leaves").Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "charge.go", files[1].Name)
}
