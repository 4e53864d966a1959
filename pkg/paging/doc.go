// Package paging provides a lazy, cached view over remote paginated
// collections.
//
// The Verso API returns bounded pages addressed by offset and limit, each
// carrying the collection's total count. A List wraps a per-resource
// Fetcher and answers index, slice, length, and iteration queries by
// fetching only the pages the query touches:
//
//	list := paging.NewList(fetchDatasets, paging.DefaultLimit)
//	ds, err := list.Get(ctx, 4)        // fetches pages 0..ceil(5/limit)-1
//	n, err := list.Len(ctx)            // at most one fetch
//	for it := list.Iter(ctx); it.Next(); {
//		use(it.Item())
//	}
//
// Fetched pages are cached for the lifetime of the List and never
// refetched or expired, so repeated access to the same positions costs no
// further round trips. The total count reflects the server's knowledge at
// the time of the most recent fetch; no snapshot consistency is promised
// across pages when the remote collection is mutated concurrently.
package paging
