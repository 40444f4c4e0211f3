//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/qubelint-io/qapi-client/pkg/qapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkflow_ProjectLifecycle exercises create, search, gate status and
// delete against a live server.
func TestWorkflow_ProjectLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := config.NewClient(ctx)
	require.NoError(t, err)

	status, err := client.System().Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UP", status.Status)

	projectKey := GenerateTestName("qapi-it")

	project, err := client.Projects().Create(ctx, &qapi.ProjectCreateRequest{
		Key:  projectKey,
		Name: "qapi integration test project",
	})
	require.NoError(t, err)
	assert.Equal(t, projectKey, project.Key)

	defer func() {
		assert.NoError(t, client.Projects().Delete(ctx, projectKey))
	}()

	// The new project should be discoverable through the search builder.
	page, err := client.Projects().Search().Query(projectKey).Execute(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, projectKey, page.Items[0].Key)

	// A project with no analysis still reports a gate association.
	gate, err := client.QualityGates().GetByProject(ctx, projectKey)
	require.NoError(t, err)
	assert.NotEmpty(t, gate.Name)
}

// TestWorkflow_IssueTraversal walks every issue page of the server and
// checks the traversal terminates with consistent counts.
func TestWorkflow_IssueTraversal(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := config.NewClient(ctx)
	require.NoError(t, err)

	page, err := client.Issues().Search().Execute(ctx)
	require.NoError(t, err)

	search := client.Issues().Search()
	search.PageSize(100)

	count := 0
	for _, err := range search.All(ctx) {
		require.NoError(t, err)

		count++
		if count > page.Paging.Total {
			t.Fatalf("traversal yielded more items (%d) than the reported total (%d)", count, page.Paging.Total)
		}
	}

	assert.LessOrEqual(t, count, page.Paging.Total)
}
