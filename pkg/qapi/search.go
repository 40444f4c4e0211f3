package qapi

import (
	"context"
	"iter"
)

// PageStyle selects the pagination parameter names an endpoint expects. The
// API is not uniform: most search endpoints take p/ps, newer ones take
// page/pageSize. The choice is a per-endpoint lookup, never inferred.
type PageStyle int

const (
	// PageStyleShort uses the p / ps parameter pair.
	PageStyleShort PageStyle = iota
	// PageStyleLong uses the page / pageSize parameter pair.
	PageStyleLong
)

func (s PageStyle) pageKey() string {
	if s == PageStyleLong {
		return "page"
	}

	return "p"
}

func (s PageStyle) sizeKey() string {
	if s == PageStyleLong {
		return "pageSize"
	}

	return "ps"
}

// Executor performs a single page fetch for the given parameter bag. Each
// resource client supplies one to the builder at construction time; the
// builder itself never issues HTTP requests.
type Executor[T any] func(ctx context.Context, params Params) (*Page[T], error)

// SearchBuilder accumulates query parameters fluently and executes paginated
// searches through an injected executor. A builder is not safe for
// concurrent mutation; independent builders share no state.
type SearchBuilder[T any] struct {
	params Params
	style  PageStyle
	exec   Executor[T]
	err    error
}

// NewSearchBuilder creates a builder for an endpoint with the given
// pagination style and executor.
func NewSearchBuilder[T any](style PageStyle, exec Executor[T]) *SearchBuilder[T] {
	return &SearchBuilder[T]{
		params: NewParams(),
		style:  style,
		exec:   exec,
	}
}

// Set stores a query parameter, replacing any previous value for the same
// name. Nil values are no-ops. No validation happens here; typed wrappers
// layer their own invariants via Fail.
func (b *SearchBuilder[T]) Set(name string, value any) *SearchBuilder[T] {
	b.params.Set(name, value)

	return b
}

// Has reports whether a parameter has been set. Wrappers use it to enforce
// mutually exclusive setters.
func (b *SearchBuilder[T]) Has(name string) bool {
	return b.params.Has(name)
}

// Page sets the page index parameter. The remote API owns range validation.
func (b *SearchBuilder[T]) Page(n int) *SearchBuilder[T] {
	return b.Set(b.style.pageKey(), n)
}

// PageSize sets the page size parameter. The remote API owns range
// validation.
func (b *SearchBuilder[T]) PageSize(n int) *SearchBuilder[T] {
	return b.Set(b.style.sizeKey(), n)
}

// Fail records a validation error on the builder. The first recorded error
// sticks: Execute and All return it before any fetch is attempted, which is
// how wrapper builders surface invariant violations at setter time.
func (b *SearchBuilder[T]) Fail(err error) *SearchBuilder[T] {
	if b.err == nil {
		b.err = err
	}

	return b
}

// Err returns the sticky validation error, if any, without fetching.
func (b *SearchBuilder[T]) Err() error {
	return b.err
}

// Execute serializes the current parameter bag and invokes the executor
// exactly once, propagating its result or error unmodified. The executor
// receives a snapshot so it cannot mutate builder state.
func (b *SearchBuilder[T]) Execute(ctx context.Context) (*Page[T], error) {
	if b.err != nil {
		return nil, b.err
	}

	return b.exec(ctx, b.params.Clone())
}

// All returns a lazy sequence over every item of every page. Each call
// starts a fresh traversal from the builder's current page (default 1) over
// a snapshot of the parameter bag; a single traversal is a one-shot walk.
// Pages are fetched strictly sequentially in increasing index order, one
// fetch per page boundary. Iteration stops when the cumulative count
// reaches Paging.Total, or unconditionally when a page comes back empty,
// so an under-delivering server cannot spin the walk forever. Breaking out
// of the loop stops further fetches; in-flight requests are not aborted.
func (b *SearchBuilder[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		if b.err != nil {
			yield(zero, b.err)

			return
		}

		params := b.params.Clone()

		page := 1
		if n, ok := params.Int(b.style.pageKey()); ok && n > 0 {
			page = n
		}

		yielded := 0

		for {
			params.Set(b.style.pageKey(), page)

			result, err := b.exec(ctx, params.Clone())
			if err != nil {
				yield(zero, err)

				return
			}

			if len(result.Items) == 0 {
				return
			}

			for _, item := range result.Items {
				if !yield(item, nil) {
					return
				}

				yielded++
				if result.Paging.Total > 0 && yielded >= result.Paging.Total {
					return
				}
			}

			page++
		}
	}
}

// Collect walks All to completion and returns the items as a slice.
func (b *SearchBuilder[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T

	for item, err := range b.All(ctx) {
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}
