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

func TestUsersClient_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/users/search", request.URL.Path)
		assert.Equal(t, "ada", request.URL.Query().Get("q"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"paging": map[string]int{"pageIndex": 1, "pageSize": 50, "total": 1},
			"users": []map[string]interface{}{
				{"login": "ada", "name": "Ada Lovelace", "active": true, "local": true},
			},
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	page, err := c.Users().Search().Query("ada").Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ada", page.Items[0].Login)
	assert.True(t, page.Items[0].Active)
}

func TestUsersClient_Create(t *testing.T) {
	t.Parallel()

	server := client.NewFormServer(t, "/api/users/create", map[string]string{
		"login": "ada",
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"local": "true",
	}, http.StatusOK, json.RawMessage(`{"user":{"login":"ada","name":"Ada Lovelace","email":"ada@example.com","active":true,"local":true}}`))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	user, err := c.Users().Create(context.Background(), &qapi.UserCreateRequest{
		Login:    "ada",
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "s3cret",
		Local:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Login)
}

func TestUsersClient_Deactivate(t *testing.T) {
	t.Parallel()

	server := client.NewFormServer(t, "/api/users/deactivate", map[string]string{
		"login": "ada",
	}, http.StatusNoContent, nil)
	defer server.Close()

	c := client.NewTestClient(server.URL)

	err := c.Users().Deactivate(context.Background(), "ada")
	require.NoError(t, err)
}

func TestUsersClient_UpdateLoginIsRemoved(t *testing.T) {
	t.Parallel()

	// The endpoint is gone from the API, so no server is contacted at all.
	c := client.NewTestClient("http://127.0.0.1:1")

	err := c.Users().UpdateLogin(context.Background(), "ada", "ada.lovelace")
	require.Error(t, err)
	assert.True(t, qapi.IsRemovedAPI(err))

	var apiErr *qapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"api/v2/users-management/users"}, apiErr.Migration)
	assert.Contains(t, apiErr.Message, "api/users/update_login")
}
