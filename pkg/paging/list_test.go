package paging

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeCollection simulates a remote paginated collection and counts the
// fetches issued against it.
type fakeCollection struct {
	items      []string
	fetchCount int
	failNext   error
}

func (f *fakeCollection) fetcher() Fetcher[string] {
	return func(ctx context.Context, offset, limit int) ([]string, int, error) {
		f.fetchCount++
		if f.failNext != nil {
			err := f.failNext
			f.failNext = nil
			return nil, 0, err
		}
		if offset > len(f.items) {
			return nil, len(f.items), nil
		}
		end := offset + limit
		if end > len(f.items) {
			end = len(f.items)
		}
		return f.items[offset:end], len(f.items), nil
	}
}

func newFake(n int) *fakeCollection {
	f := &fakeCollection{}
	for i := 0; i < n; i++ {
		f.items = append(f.items, fmt.Sprintf("item-%d", i))
	}
	return f
}

func TestNewList_Validation(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewList should panic with non-positive limit")
		}
	}()
	NewList(newFake(1).fetcher(), 0)
}

func TestGet_FetchesOnlyNeededPages(t *testing.T) {
	ctx := context.Background()
	f := newFake(10)
	list := NewList(f.fetcher(), 3)

	item, err := list.Get(ctx, 4)
	if err != nil {
		t.Fatalf("Get(4) failed: %v", err)
	}
	if item != "item-4" {
		t.Errorf("Get(4) = %q, want %q", item, "item-4")
	}
	// Index 4 lives in the second page of size 3.
	if f.fetchCount != 2 {
		t.Errorf("fetch count = %d, want 2", f.fetchCount)
	}
}

func TestGet_MonotonicCaching(t *testing.T) {
	ctx := context.Background()
	f := newFake(20)
	limit := 4
	list := NewList(f.fetcher(), limit)

	for i := 0; i < 20; i++ {
		if _, err := list.Get(ctx, i); err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
		maxFetches := (i + limit) / limit // ceil((i+1)/limit)
		if f.fetchCount > maxFetches {
			t.Fatalf("after Get(%d): fetch count = %d, want <= %d", i, f.fetchCount, maxFetches)
		}
	}
}

func TestGet_NoDuplicateFetch(t *testing.T) {
	ctx := context.Background()
	f := newFake(10)
	list := NewList(f.fetcher(), 3)

	if _, err := list.Get(ctx, 7); err != nil {
		t.Fatalf("Get(7) failed: %v", err)
	}
	before := f.fetchCount

	for i := 0; i <= 7; i++ {
		if _, err := list.Get(ctx, i); err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
	}
	if f.fetchCount != before {
		t.Errorf("cached Get issued %d extra fetches", f.fetchCount-before)
	}
}

func TestGet_NegativeIndex(t *testing.T) {
	ctx := context.Background()
	f := newFake(10)
	list := NewList(f.fetcher(), 4)

	item, err := list.Get(ctx, -1)
	if err != nil {
		t.Fatalf("Get(-1) failed: %v", err)
	}
	if item != "item-9" {
		t.Errorf("Get(-1) = %q, want %q", item, "item-9")
	}

	if _, err := list.Get(ctx, -11); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Get(-11) error = %v, want ErrOutOfRange", err)
	}
}

func TestGet_OutOfRange(t *testing.T) {
	ctx := context.Background()
	f := newFake(5)
	list := NewList(f.fetcher(), 2)

	_, err := list.Get(ctx, 5)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Get(5) error = %v, want ErrOutOfRange", err)
	}
}

// The five-item scenario: pages [a,b], [c,d], [e] with limit 2.
func TestScenario_FiveItemsLimitTwo(t *testing.T) {
	ctx := context.Background()
	f := newFake(5)
	list := NewList(f.fetcher(), 2)

	item, err := list.Get(ctx, 4)
	if err != nil {
		t.Fatalf("Get(4) failed: %v", err)
	}
	if item != "item-4" {
		t.Errorf("Get(4) = %q, want %q", item, "item-4")
	}
	if f.fetchCount != 3 {
		t.Errorf("fetch count = %d, want 3", f.fetchCount)
	}

	n, err := list.Len(ctx)
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Len = %d, want 5", n)
	}

	if _, err := list.Get(ctx, 5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Get(5) error = %v, want ErrOutOfRange", err)
	}
	if f.fetchCount != 3 {
		t.Errorf("fetch count after bounds checks = %d, want 3", f.fetchCount)
	}
}

func TestLen_SingleFetch(t *testing.T) {
	ctx := context.Background()
	f := newFake(50)
	list := NewList(f.fetcher(), 8)

	n, err := list.Len(ctx)
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 50 {
		t.Errorf("Len = %d, want 50", n)
	}
	if f.fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", f.fetchCount)
	}

	// Stable afterwards, no further fetches.
	if _, err := list.Len(ctx); err != nil {
		t.Fatalf("second Len failed: %v", err)
	}
	if f.fetchCount != 1 {
		t.Errorf("fetch count after second Len = %d, want 1", f.fetchCount)
	}
}

func TestLen_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	f := newFake(0)
	list := NewList(f.fetcher(), 4)

	n, err := list.Len(ctx)
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Len = %d, want 0", n)
	}
	if _, err := list.Get(ctx, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Get(0) error = %v, want ErrOutOfRange", err)
	}
}

func TestSlice_Correctness(t *testing.T) {
	ctx := context.Background()
	f := newFake(10)
	list := NewList(f.fetcher(), 3)

	got, err := list.Slice(ctx, 2, 7, 1)
	if err != nil {
		t.Fatalf("Slice(2, 7, 1) failed: %v", err)
	}
	want := []string{"item-2", "item-3", "item-4", "item-5", "item-6"}
	assertItems(t, got, want)

	// Pages of size 3 covering [0, 7): three fetches, nothing past offset 9.
	if f.fetchCount != 3 {
		t.Errorf("fetch count = %d, want 3", f.fetchCount)
	}
}

func TestSlice_Semantics(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name              string
		start, stop, step int
		want              []string
	}{
		{"forward step 2", 1, 8, 2, []string{"item-1", "item-3", "item-5", "item-7"}},
		{"negative start", -3, 10, 1, []string{"item-7", "item-8", "item-9"}},
		{"negative stop", 0, -7, 1, []string{"item-0", "item-1", "item-2"}},
		{"clamped stop", 8, 100, 1, []string{"item-8", "item-9"}},
		{"clamped start backward", 100, 7, -1, []string{"item-9", "item-8"}},
		{"backward", 4, 1, -1, []string{"item-4", "item-3", "item-2"}},
		{"backward to head", 2, -11, -1, []string{"item-2", "item-1", "item-0"}},
		{"empty forward", 7, 2, 1, nil},
		{"empty backward", 2, 7, -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFake(10)
			list := NewList(f.fetcher(), 4)

			got, err := list.Slice(ctx, tt.start, tt.stop, tt.step)
			if err != nil {
				t.Fatalf("Slice(%d, %d, %d) failed: %v", tt.start, tt.stop, tt.step, err)
			}
			assertItems(t, got, tt.want)
		})
	}
}

func TestSlice_ZeroStep(t *testing.T) {
	ctx := context.Background()
	f := newFake(10)
	list := NewList(f.fetcher(), 4)

	_, err := list.Slice(ctx, 0, 5, 0)
	if !errors.Is(err, ErrZeroStep) {
		t.Errorf("Slice step 0 error = %v, want ErrZeroStep", err)
	}
	if f.fetchCount != 0 {
		t.Errorf("fetch count = %d, want 0", f.fetchCount)
	}
}

func TestIter_YieldsAllInOrder(t *testing.T) {
	ctx := context.Background()
	f := newFake(7)
	list := NewList(f.fetcher(), 3)

	var got []string
	for it := list.Iter(ctx); it.Next(); {
		got = append(got, it.Item())
	}

	want := []string{"item-0", "item-1", "item-2", "item-3", "item-4", "item-5", "item-6"}
	assertItems(t, got, want)
	if f.fetchCount != 3 {
		t.Errorf("fetch count = %d, want 3", f.fetchCount)
	}
}

func TestIter_Restartable(t *testing.T) {
	ctx := context.Background()
	f := newFake(9)
	list := NewList(f.fetcher(), 4)

	var first []string
	for it := list.Iter(ctx); it.Next(); {
		first = append(first, it.Item())
	}
	fetchesAfterFirst := f.fetchCount

	var second []string
	for it := list.Iter(ctx); it.Next(); {
		second = append(second, it.Item())
	}

	assertItems(t, second, first)
	if f.fetchCount != fetchesAfterFirst {
		t.Errorf("second iteration issued %d extra fetches", f.fetchCount-fetchesAfterFirst)
	}
}

// Exhaustion stop: a fetcher whose server-side total overstates reality.
func TestIter_ExhaustionStop(t *testing.T) {
	ctx := context.Background()

	fetchCount := 0
	fetch := func(ctx context.Context, offset, limit int) ([]string, int, error) {
		fetchCount++
		// Claims 100 items but only has 5.
		items := []string{"a", "b", "c", "d", "e"}
		if offset >= len(items) {
			return nil, 100, nil
		}
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		return items[offset:end], 100, nil
	}

	list := NewList(fetch, 2)
	var got []string
	for it := list.Iter(ctx); it.Next(); {
		got = append(got, it.Item())
	}

	assertItems(t, got, []string{"a", "b", "c", "d", "e"})
	// Pages [a,b], [c,d], [e]; the short third page stops iteration.
	if fetchCount != 3 {
		t.Errorf("fetch count = %d, want 3", fetchCount)
	}

	// The total is fixed to actual exhaustion.
	n, err := list.Len(ctx)
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Len after exhaustion = %d, want 5", n)
	}
}

func TestFetchError_PropagatesAndPreservesCache(t *testing.T) {
	ctx := context.Background()
	f := newFake(10)
	list := NewList(f.fetcher(), 3)

	if _, err := list.Get(ctx, 2); err != nil {
		t.Fatalf("Get(2) failed: %v", err)
	}

	wantErr := errors.New("boom")
	f.failNext = wantErr
	if _, err := list.Get(ctx, 5); !errors.Is(err, wantErr) {
		t.Errorf("Get(5) error = %v, want %v", err, wantErr)
	}

	// Cached prefix still answers without refetching.
	before := f.fetchCount
	item, err := list.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get(1) after failure failed: %v", err)
	}
	if item != "item-1" {
		t.Errorf("Get(1) = %q, want %q", item, "item-1")
	}
	if f.fetchCount != before {
		t.Errorf("cached Get after failure issued %d extra fetches", f.fetchCount-before)
	}

	// Retry succeeds and resumes from the cached boundary.
	if _, err := list.Get(ctx, 5); err != nil {
		t.Fatalf("retried Get(5) failed: %v", err)
	}
}

func TestIter_ErrSurfaced(t *testing.T) {
	ctx := context.Background()
	f := newFake(10)
	f.failNext = errors.New("network down")
	list := NewList(f.fetcher(), 3)

	it := list.Iter(ctx)
	if it.Next() {
		t.Error("Next should return false on fetch failure")
	}
	if it.Err() == nil {
		t.Error("Err should report the fetch failure")
	}
}

func assertItems(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("items[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
