package paging

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for lazy paging operations.
var (
	pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verso_paging_pages_fetched_total",
		Help: "Total number of pages fetched by lazy paging lists",
	})

	itemsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verso_paging_items_fetched_total",
		Help: "Total number of items fetched and cached by lazy paging lists",
	})
)

// Errors returned by list accessors. Both are distinct from transport
// errors, which propagate from the fetcher unchanged.
var (
	// ErrOutOfRange is returned when an index is outside the collection.
	ErrOutOfRange = errors.New("paging: index out of range")

	// ErrZeroStep is returned when Slice is called with step 0.
	ErrZeroStep = errors.New("paging: slice step cannot be zero")
)

// DefaultLimit is the page size used by managers when listing resources.
const DefaultLimit = 128

// Fetcher retrieves one page of a remote collection. It returns the items
// at [offset, offset+limit), which may be fewer than limit near the end of
// the collection, together with the total item count the server knows at
// call time.
type Fetcher[T any] func(ctx context.Context, offset, limit int) (items []T, totalCount int, err error)

// List is a sequence-like view over a remote paginated collection. Pages
// are fetched on demand through the Fetcher and cached in collection
// order; a page is never fetched twice by the same List. The cached
// prefix survives a failed fetch and stays usable.
//
// A List is not safe for concurrent use. Callers that want parallelism
// must give each goroutine its own List.
type List[T any] struct {
	fetch Fetcher[T]
	limit int
	cache []T
	total int // -1 until the first page reports it
}

// NewList creates a lazy paging list over fetch. limit is the fixed page
// size for every fetch; it must be positive.
func NewList[T any](fetch Fetcher[T], limit int) *List[T] {
	if fetch == nil {
		panic("paging: fetcher cannot be nil")
	}
	if limit <= 0 {
		panic(fmt.Sprintf("paging: limit must be positive (got %d)", limit))
	}

	return &List[T]{
		fetch: fetch,
		limit: limit,
		total: -1,
	}
}

// ensure fetches consecutive pages until the cache covers [0, hi), the
// collection is exhausted, or a fetch fails. The reported total is
// corrected downward when the server returns a short page, so actual
// exhaustion always wins over a stale count.
func (l *List[T]) ensure(ctx context.Context, hi int) error {
	for len(l.cache) < hi {
		if l.total >= 0 && len(l.cache) >= l.total {
			return nil
		}

		offset := len(l.cache)
		items, total, err := l.fetch(ctx, offset, l.limit)
		if err != nil {
			return err
		}

		l.cache = append(l.cache, items...)
		l.total = total

		pagesFetchedTotal.Inc()
		itemsFetchedTotal.Add(float64(len(items)))

		log.Debug().
			Int("offset", offset).
			Int("limit", l.limit).
			Int("returned", len(items)).
			Int("total_count", total).
			Msg("Fetched page")

		// A short page means the collection ended here, whatever the
		// server-reported total says.
		if len(items) < l.limit {
			l.total = len(l.cache)
			return nil
		}
	}

	return nil
}

// Len returns the collection's total item count as most recently observed,
// fetching the first page to learn it if no page has been fetched yet.
func (l *List[T]) Len(ctx context.Context) (int, error) {
	if l.total < 0 {
		if err := l.ensure(ctx, 1); err != nil {
			return 0, err
		}
	}
	return l.total, nil
}

// Get returns the item at the given zero-based index, fetching any pages
// between the cached prefix and the index. Negative indices resolve from
// the end of the collection, which forces the total to be resolved first.
// Returns ErrOutOfRange when the index falls outside the collection.
func (l *List[T]) Get(ctx context.Context, index int) (T, error) {
	var zero T

	if index < 0 {
		n, err := l.Len(ctx)
		if err != nil {
			return zero, err
		}
		index += n
		if index < 0 {
			return zero, fmt.Errorf("%w: %d with length %d", ErrOutOfRange, index-n, n)
		}
	}

	if err := l.ensure(ctx, index+1); err != nil {
		return zero, err
	}
	if index >= len(l.cache) {
		return zero, fmt.Errorf("%w: %d with length %d", ErrOutOfRange, index, l.total)
	}

	return l.cache[index], nil
}

// Slice returns the items selected by Python-style slice semantics:
// negative indices count from the end, out-of-range bounds clamp instead
// of erroring, and a negative step walks backward. Only the pages covering
// the requested range are fetched. Returns ErrZeroStep when step is 0.
func (l *List[T]) Slice(ctx context.Context, start, stop, step int) ([]T, error) {
	if step == 0 {
		return nil, ErrZeroStep
	}

	// The fast path needs no length resolution: a forward slice with
	// non-negative bounds fetches at most the pages below stop.
	if step > 0 && start >= 0 && stop >= 0 {
		if err := l.ensure(ctx, stop); err != nil {
			return nil, err
		}
		if n := len(l.cache); stop > n {
			stop = n
		}
		return l.collect(start, stop, step), nil
	}

	n, err := l.Len(ctx)
	if err != nil {
		return nil, err
	}
	start, stop = clampBounds(start, stop, step, n)

	if step > 0 {
		if err := l.ensure(ctx, stop); err != nil {
			return nil, err
		}
	} else if err := l.ensure(ctx, start+1); err != nil {
		return nil, err
	}

	return l.collect(start, stop, step), nil
}

// collect gathers cached items for normalized slice bounds.
func (l *List[T]) collect(start, stop, step int) []T {
	var out []T
	if step > 0 {
		for i := start; i < stop && i < len(l.cache); i += step {
			out = append(out, l.cache[i])
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, l.cache[i])
		}
	}
	return out
}

// clampBounds normalizes slice bounds against a known length, following
// the rules of Python's slice.indices.
func clampBounds(start, stop, step, n int) (int, int) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}

	if step > 0 {
		start = max(0, min(start, n))
		stop = max(0, min(stop, n))
	} else {
		start = max(-1, min(start, n-1))
		stop = max(-1, min(stop, n-1))
	}

	return start, stop
}
