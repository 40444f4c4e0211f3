package qapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/qubelint-io/qapi-client/pkg/qapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	Key string
}

// pagedExecutor serves canned pages keyed by page number and records every
// parameter set it receives.
type pagedExecutor struct {
	pages   map[int]*qapi.Page[testItem]
	pageKey string
	calls   []qapi.Params
}

func newPagedExecutor(pageKey string, pages map[int]*qapi.Page[testItem]) *pagedExecutor {
	return &pagedExecutor{pages: pages, pageKey: pageKey}
}

func (e *pagedExecutor) exec(ctx context.Context, params qapi.Params) (*qapi.Page[testItem], error) {
	e.calls = append(e.calls, params)

	page := 1
	if n, ok := params.Int(e.pageKey); ok {
		page = n
	}

	response, ok := e.pages[page]
	if !ok {
		return &qapi.Page[testItem]{Items: []testItem{}}, nil
	}

	return response, nil
}

func makeItems(keys ...string) []testItem {
	items := make([]testItem, 0, len(keys))
	for _, key := range keys {
		items = append(items, testItem{Key: key})
	}

	return items
}

func TestSearchBuilder_AllWalksEveryPage(t *testing.T) {
	executor := newPagedExecutor("p", map[int]*qapi.Page[testItem]{
		1: {Paging: qapi.Paging{PageIndex: 1, PageSize: 2, Total: 5}, Items: makeItems("a", "b")},
		2: {Paging: qapi.Paging{PageIndex: 2, PageSize: 2, Total: 5}, Items: makeItems("c", "d")},
		3: {Paging: qapi.Paging{PageIndex: 3, PageSize: 2, Total: 5}, Items: makeItems("e")},
	})

	builder := qapi.NewSearchBuilder(qapi.PageStyleShort, executor.exec)

	var keys []string
	for item, err := range builder.All(context.Background()) {
		require.NoError(t, err)
		keys = append(keys, item.Key)
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, keys)
	assert.Len(t, executor.calls, 3)
}

func TestSearchBuilder_AllStopsAtTotalWithoutTrailingFetch(t *testing.T) {
	executor := newPagedExecutor("p", map[int]*qapi.Page[testItem]{
		1: {Paging: qapi.Paging{PageIndex: 1, PageSize: 2, Total: 4}, Items: makeItems("a", "b")},
		2: {Paging: qapi.Paging{PageIndex: 2, PageSize: 2, Total: 4}, Items: makeItems("c", "d")},
	})

	builder := qapi.NewSearchBuilder(qapi.PageStyleShort, executor.exec)

	items, err := builder.Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 4)
	// The total was reached on page 2, so no empty third fetch happens.
	assert.Len(t, executor.calls, 2)
}

func TestSearchBuilder_AllEmptyResult(t *testing.T) {
	executor := newPagedExecutor("p", map[int]*qapi.Page[testItem]{})

	builder := qapi.NewSearchBuilder(qapi.PageStyleShort, executor.exec)

	items, err := builder.Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Len(t, executor.calls, 1)
}

func TestSearchBuilder_AllIsRestartable(t *testing.T) {
	executor := newPagedExecutor("p", map[int]*qapi.Page[testItem]{
		1: {Paging: qapi.Paging{PageIndex: 1, PageSize: 2, Total: 3}, Items: makeItems("a", "b")},
		2: {Paging: qapi.Paging{PageIndex: 2, PageSize: 2, Total: 3}, Items: makeItems("c")},
	})

	builder := qapi.NewSearchBuilder(qapi.PageStyleShort, executor.exec)

	first, err := builder.Collect(context.Background())
	require.NoError(t, err)

	second, err := builder.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, executor.calls, 4)
}

func TestSearchBuilder_AllSnapshotsParameters(t *testing.T) {
	executor := newPagedExecutor("p", map[int]*qapi.Page[testItem]{
		1: {Paging: qapi.Paging{PageIndex: 1, PageSize: 2, Total: 3}, Items: makeItems("a", "b")},
		2: {Paging: qapi.Paging{PageIndex: 2, PageSize: 2, Total: 3}, Items: makeItems("c")},
	})

	builder := qapi.NewSearchBuilder(qapi.PageStyleShort, executor.exec)
	builder.Set("q", "before")

	for _, err := range builder.All(context.Background()) {
		require.NoError(t, err)
		// Mutations after iteration starts must not leak into later fetches.
		builder.Set("q", "mutated")
	}

	require.Len(t, executor.calls, 2)
	for _, call := range executor.calls {
		assert.Equal(t, "before", call.Values().Get("q"))
	}
}

func TestSearchBuilder_AllStartsAtRequestedPage(t *testing.T) {
	executor := newPagedExecutor("p", map[int]*qapi.Page[testItem]{
		2: {Paging: qapi.Paging{PageIndex: 2, PageSize: 2, Total: 3}, Items: makeItems("c")},
	})

	builder := qapi.NewSearchBuilder(qapi.PageStyleShort, executor.exec).Page(2)

	items, err := builder.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, makeItems("c"), items)
	assert.Equal(t, "2", executor.calls[0].Values().Get("p"))
}

func TestSearchBuilder_AllPropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("boom")
	calls := 0
	exec := func(ctx context.Context, params qapi.Params) (*qapi.Page[testItem], error) {
		calls++
		if calls > 1 {
			return nil, fetchErr
		}

		return &qapi.Page[testItem]{
			Paging: qapi.Paging{PageIndex: 1, PageSize: 2, Total: 4},
			Items:  makeItems("a", "b"),
		}, nil
	}

	builder := qapi.NewSearchBuilder(qapi.PageStyleShort, exec)

	var keys []string
	var seen error
	for item, err := range builder.All(context.Background()) {
		if err != nil {
			seen = err

			break
		}

		keys = append(keys, item.Key)
	}

	assert.Equal(t, []string{"a", "b"}, keys)
	require.ErrorIs(t, seen, fetchErr)
}

func TestSearchBuilder_ExecuteIsSideEffectFree(t *testing.T) {
	executor := newPagedExecutor("p", map[int]*qapi.Page[testItem]{
		1: {Paging: qapi.Paging{PageIndex: 1, PageSize: 2, Total: 2}, Items: makeItems("a", "b")},
	})

	builder := qapi.NewSearchBuilder(qapi.PageStyleShort, executor.exec)
	builder.Set("q", "stable")

	first, err := builder.Execute(context.Background())
	require.NoError(t, err)

	second, err := builder.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, executor.calls, 2)
	assert.Equal(t, executor.calls[0].Values(), executor.calls[1].Values())
}

func TestSearchBuilder_PageStyleLongKeys(t *testing.T) {
	executor := newPagedExecutor("page", map[int]*qapi.Page[testItem]{
		1: {Paging: qapi.Paging{PageIndex: 1, PageSize: 50, Total: 1}, Items: makeItems("a")},
	})

	builder := qapi.NewSearchBuilder(qapi.PageStyleLong, executor.exec).PageSize(50)

	_, err := builder.Collect(context.Background())
	require.NoError(t, err)

	values := executor.calls[0].Values()
	assert.Equal(t, "1", values.Get("page"))
	assert.Equal(t, "50", values.Get("pageSize"))
	assert.Empty(t, values.Get("p"))
	assert.Empty(t, values.Get("ps"))
}

func TestHotspotSearch_ConflictingSelectors(t *testing.T) {
	exec := func(ctx context.Context, params qapi.Params) (*qapi.Page[qapi.Hotspot], error) {
		t.Fatal("executor must not run with conflicting selectors")

		return nil, nil
	}

	t.Run("project key then hotspot keys", func(t *testing.T) {
		search := qapi.NewHotspotSearch(exec).
			ProjectKey("my-project").
			Hotspots("AX-1", "AX-2")

		_, err := search.Execute(context.Background())
		require.ErrorIs(t, err, qapi.ErrConflictingParameters)
	})

	t.Run("hotspot keys then project key", func(t *testing.T) {
		search := qapi.NewHotspotSearch(exec).
			Hotspots("AX-1").
			ProjectKey("my-project")

		_, err := search.Execute(context.Background())
		require.ErrorIs(t, err, qapi.ErrConflictingParameters)
	})

	t.Run("error surfaces through All", func(t *testing.T) {
		search := qapi.NewHotspotSearch(exec).
			ProjectKey("my-project").
			Hotspots("AX-1")

		var seen error
		for _, err := range search.All(context.Background()) {
			seen = err
		}

		require.ErrorIs(t, seen, qapi.ErrConflictingParameters)
	})
}

func TestIssueSearch_BuildsExpectedParameters(t *testing.T) {
	var captured qapi.Params
	exec := func(ctx context.Context, params qapi.Params) (*qapi.Page[qapi.Issue], error) {
		captured = params

		return &qapi.Page[qapi.Issue]{Items: []qapi.Issue{}}, nil
	}

	_, err := qapi.NewIssueSearch(exec).
		ComponentKeys("my-project").
		Severities("BLOCKER", "CRITICAL").
		Resolved(false).
		PageSize(100).
		Execute(context.Background())
	require.NoError(t, err)

	values := captured.Values()
	assert.Equal(t, "my-project", values.Get("componentKeys"))
	assert.Equal(t, "BLOCKER,CRITICAL", values.Get("severities"))
	assert.Equal(t, "false", values.Get("resolved"))
	assert.Equal(t, "100", values.Get("ps"))
}
