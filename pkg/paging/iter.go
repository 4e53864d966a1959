package paging

import "context"

// Iterator walks a List in collection order, fetching pages on demand as
// it advances. Iteration stops once the observed total has been yielded
// or the fetcher reports no more items, whichever comes first.
//
// Iterators created from the same List share its page cache, so a second
// pass only fetches pages the first pass never reached.
type Iterator[T any] struct {
	list *List[T]
	ctx  context.Context
	pos  int
	cur  T
	err  error
}

// Iter returns a new iterator positioned before the first item. The
// context is used for every fetch the iterator triggers.
func (l *List[T]) Iter(ctx context.Context) *Iterator[T] {
	return &Iterator[T]{list: l, ctx: ctx}
}

// Next advances to the next item. It returns false when the collection is
// exhausted or a fetch failed; check Err to distinguish the two.
func (it *Iterator[T]) Next() bool {
	if it.err != nil {
		return false
	}

	l := it.list
	if l.total >= 0 && it.pos >= l.total {
		return false
	}

	if it.pos >= len(l.cache) {
		if err := l.ensure(it.ctx, it.pos+1); err != nil {
			it.err = err
			return false
		}
		if it.pos >= len(l.cache) {
			return false
		}
	}

	it.cur = l.cache[it.pos]
	it.pos++
	return true
}

// Item returns the item Next advanced to. Valid only after Next returned true.
func (it *Iterator[T]) Item() T {
	return it.cur
}

// Err returns the fetch error that stopped iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}
