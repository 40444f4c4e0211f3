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

func TestQualityGatesClient_List(t *testing.T) {
	t.Parallel()

	server := client.NewJSONServer(t, "GET", "/api/qualitygates/list", http.StatusOK, map[string]interface{}{
		"qualitygates": []map[string]interface{}{
			{"name": "Default Way", "isDefault": true, "isBuiltIn": true},
			{"name": "Strict", "isDefault": false, "isBuiltIn": false},
		},
	})
	defer server.Close()

	c := client.NewTestClient(server.URL)

	gates, err := c.QualityGates().List(context.Background())
	require.NoError(t, err)
	require.Len(t, gates, 2)
	assert.True(t, gates[0].IsDefault)
	assert.Equal(t, "Strict", gates[1].Name)
}

func TestQualityGatesClient_Show(t *testing.T) {
	t.Parallel()

	server := client.NewJSONServer(t, "GET", "/api/qualitygates/show", http.StatusOK, map[string]interface{}{
		"name": "Strict",
		"conditions": []map[string]string{
			{"metric": "new_coverage", "op": "LT", "error": "80"},
		},
	})
	defer server.Close()

	c := client.NewTestClient(server.URL)

	gate, err := c.QualityGates().Show(context.Background(), "Strict")
	require.NoError(t, err)
	require.Len(t, gate.Conditions, 1)
	assert.Equal(t, "new_coverage", gate.Conditions[0].Metric)
}

func TestQualityGatesClient_CreateAndDestroy(t *testing.T) {
	t.Parallel()

	t.Run("create", func(t *testing.T) {
		t.Parallel()

		server := client.NewFormServer(t, "/api/qualitygates/create", map[string]string{
			"name": "Strict",
		}, http.StatusOK, map[string]string{"name": "Strict"})
		defer server.Close()

		c := client.NewTestClient(server.URL)

		gate, err := c.QualityGates().Create(context.Background(), "Strict")
		require.NoError(t, err)
		assert.Equal(t, "Strict", gate.Name)
	})

	t.Run("destroy", func(t *testing.T) {
		t.Parallel()

		server := client.NewFormServer(t, "/api/qualitygates/destroy", map[string]string{
			"name": "Strict",
		}, http.StatusNoContent, nil)
		defer server.Close()

		c := client.NewTestClient(server.URL)

		require.NoError(t, c.QualityGates().Destroy(context.Background(), "Strict"))
	})
}

func TestQualityGatesClient_Select(t *testing.T) {
	t.Parallel()

	server := client.NewFormServer(t, "/api/qualitygates/select", map[string]string{
		"gateName":   "Strict",
		"projectKey": "payment-api",
	}, http.StatusNoContent, nil)
	defer server.Close()

	c := client.NewTestClient(server.URL)

	require.NoError(t, c.QualityGates().Select(context.Background(), "Strict", "payment-api"))
}

func TestQualityGatesClient_ProjectStatus(t *testing.T) {
	t.Parallel()

	server := client.NewJSONServer(t, "GET", "/api/qualitygates/project_status", http.StatusOK, map[string]interface{}{
		"projectStatus": map[string]interface{}{
			"status": "ERROR",
			"conditions": []map[string]string{
				{
					"status":         "ERROR",
					"metricKey":      "new_coverage",
					"comparator":     "LT",
					"errorThreshold": "80",
					"actualValue":    "62.5",
				},
			},
		},
	})
	defer server.Close()

	c := client.NewTestClient(server.URL)

	status, err := c.QualityGates().ProjectStatus(context.Background(), "payment-api")
	require.NoError(t, err)
	assert.Equal(t, "ERROR", status.Status)
	require.Len(t, status.Conditions, 1)
	assert.Equal(t, "62.5", status.Conditions[0].ActualValue)
}

func TestQualityGatesClient_GetByProject(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/qualitygates/get_by_project", request.URL.Path)
		assert.Equal(t, "payment-api", request.URL.Query().Get("project"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"qualityGate": map[string]interface{}{"id": "qg-1", "name": "Strict", "isDefault": true},
		})
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	gate, err := c.QualityGates().GetByProject(context.Background(), "payment-api")
	require.NoError(t, err)
	assert.Equal(t, "Strict", gate.Name)
	assert.True(t, gate.IsDefault)
}
