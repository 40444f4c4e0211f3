package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// newSearchExecutor builds the fetch function behind a search builder. Each
// search endpoint wraps its item list in a differently named field
// (issues, components, hotspots, ...), so the caller names it explicitly.
func newSearchExecutor[T any](httpClient *http.Client, path, itemsField string) qapi.Executor[T] {
	return func(ctx context.Context, params qapi.Params) (*qapi.Page[T], error) {
		resp, err := httpClient.Get(ctx, path, params.Values())
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", itemsField, err)
		}

		return decodeSearchPage[T](resp.Body, itemsField)
	}
}

// decodeSearchPage unpacks one search response. Newer endpoints nest the
// counters under "paging"; a few older ones still put p/ps/total at the top
// level, so that shape is accepted too.
func decodeSearchPage[T any](body []byte, itemsField string) (*qapi.Page[T], error) {
	var envelope struct {
		Paging *qapi.Paging `json:"paging"`
		P      int          `json:"p"`
		PS     int          `json:"ps"`
		Total  int          `json:"total"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", itemsField, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", itemsField, err)
	}

	page := &qapi.Page[T]{}
	if envelope.Paging != nil {
		page.Paging = *envelope.Paging
	} else {
		page.Paging = qapi.Paging{PageIndex: envelope.P, PageSize: envelope.PS, Total: envelope.Total}
	}

	if raw, ok := fields[itemsField]; ok {
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return nil, fmt.Errorf("parsing %s items: %w", itemsField, err)
		}
	}

	if page.Items == nil {
		page.Items = []T{}
	}

	return page, nil
}
