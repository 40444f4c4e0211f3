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

func TestWebhooksClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/webhooks/list", request.URL.Path)
		assert.Equal(t, "payment-api", request.URL.Query().Get("project"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"webhooks": []map[string]string{
				{"key": "wh-1", "name": "CI notifier", "url": "https://ci.example.com/hook"},
			},
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	webhooks, err := c.Webhooks().List(context.Background(), "payment-api")
	require.NoError(t, err)
	require.Len(t, webhooks, 1)
	assert.Equal(t, "CI notifier", webhooks[0].Name)
}

func TestWebhooksClient_ListGlobal(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.False(t, request.URL.Query().Has("project"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{"webhooks": []map[string]string{}})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	webhooks, err := c.Webhooks().List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, webhooks)
}

func TestWebhooksClient_Create(t *testing.T) {
	t.Parallel()

	server := client.NewFormServer(t, "/api/webhooks/create", map[string]string{
		"name":    "CI notifier",
		"url":     "https://ci.example.com/hook",
		"project": "payment-api",
	}, http.StatusOK, json.RawMessage(`{"webhook":{"key":"wh-1","name":"CI notifier","url":"https://ci.example.com/hook"}}`))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	webhook, err := c.Webhooks().Create(context.Background(), &qapi.WebhookCreateRequest{
		Name:       "CI notifier",
		URL:        "https://ci.example.com/hook",
		ProjectKey: "payment-api",
	})
	require.NoError(t, err)
	assert.Equal(t, "wh-1", webhook.Key)
}

func TestWebhooksClient_Delete(t *testing.T) {
	t.Parallel()

	server := client.NewFormServer(t, "/api/webhooks/delete", map[string]string{
		"webhook": "wh-1",
	}, http.StatusNoContent, nil)
	defer server.Close()

	c := client.NewTestClient(server.URL)

	err := c.Webhooks().Delete(context.Background(), "wh-1")
	require.NoError(t, err)
}

func TestWebhooksClient_Deliveries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/webhooks/deliveries", request.URL.Path)

		query := request.URL.Query()
		assert.Equal(t, "wh-1", query.Get("webhook"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"paging": map[string]int{"pageIndex": 1, "pageSize": 10, "total": 2},
			"deliveries": []map[string]interface{}{
				{"id": "d-1", "name": "CI notifier", "success": true, "httpStatus": 200},
				{"id": "d-2", "name": "CI notifier", "success": false, "httpStatus": 502},
			},
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	page, err := c.Webhooks().Deliveries().Webhook("wh-1").PageSize(10).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.False(t, page.Items[1].Success)
	assert.Equal(t, 502, page.Items[1].HTTPStatus)
}
