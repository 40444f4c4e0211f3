package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	internalhttp "github.com/qubelint-io/qapi-client/internal/http"
)

// NewTestClient creates a client without authentication for tests.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}

// NewJSONServer serves body for requests matching method and path, failing
// the test on a mismatch.
func NewJSONServer(t *testing.T, method, path string, status int, body interface{}) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, path, request.URL.Path)
		assert.Equal(t, method, request.Method)

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)

		if body != nil {
			_ = json.NewEncoder(writer).Encode(body)
		}
	}))
}

// NewFormServer serves body for a POST to path after asserting the submitted
// form fields.
func NewFormServer(t *testing.T, path string, expectedForm map[string]string, status int, body interface{}) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, path, request.URL.Path)
		assert.Equal(t, http.MethodPost, request.Method)
		assert.NoError(t, request.ParseForm())

		for key, value := range expectedForm {
			assert.Equal(t, value, request.PostForm.Get(key), "form field %s", key)
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)

		if body != nil {
			_ = json.NewEncoder(writer).Encode(body)
		}
	}))
}
