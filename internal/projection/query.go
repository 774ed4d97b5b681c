package projection

import "context"

// SortKey orders a query by one internal field.
type SortKey struct {
	Field      string
	Descending bool
}

// Query is a lazily evaluated, ordered sequence supplied by a store. OrderBy
// never executes anything; Count and Slice do the reads.
type Query[T any] interface {
	// OrderBy returns a new query ordered by keys, the first being the
	// primary key. Any previous ordering is replaced.
	OrderBy(keys ...SortKey) Query[T]
	// Count returns the number of items matched, ignoring any paging.
	Count(ctx context.Context) (int, error)
	// Slice returns up to limit items starting at offset, in query order.
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}
