package projection

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SliceQuery is an in-memory Query over a slice. Sorting resolves internal
// field names through the item type's accessor table.
type SliceQuery[T any] struct {
	items  []T
	fields *Fields[T]
	keys   []SortKey
}

// FromSlice returns a query over items. The slice is not copied until the
// query is read.
func FromSlice[T any](items []T, fields *Fields[T]) *SliceQuery[T] {
	return &SliceQuery[T]{items: items, fields: fields}
}

// Where returns a query holding only the items pred accepts.
func (q *SliceQuery[T]) Where(pred func(T) bool) *SliceQuery[T] {
	var kept []T
	for _, it := range q.items {
		if pred(it) {
			kept = append(kept, it)
		}
	}
	return &SliceQuery[T]{items: kept, fields: q.fields, keys: q.keys}
}

func (q *SliceQuery[T]) OrderBy(keys ...SortKey) Query[T] {
	return &SliceQuery[T]{items: q.items, fields: q.fields, keys: append([]SortKey(nil), keys...)}
}

func (q *SliceQuery[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, err := q.getters(); err != nil {
		return 0, err
	}
	return len(q.items), nil
}

func (q *SliceQuery[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sorted, err := q.sorted()
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(sorted) || limit <= 0 {
		return []T{}, nil
	}
	end := min(offset+limit, len(sorted))
	return sorted[offset:end], nil
}

// All returns every item in query order.
func (q *SliceQuery[T]) All(ctx context.Context) ([]T, error) {
	return q.Slice(ctx, 0, len(q.items))
}

func (q *SliceQuery[T]) getters() ([]Field[T], error) {
	if len(q.keys) == 0 {
		return nil, nil
	}
	if q.fields == nil {
		return nil, &FieldError{Kind: ErrUnknownSortField, Field: q.keys[0].Field}
	}
	out := make([]Field[T], len(q.keys))
	for i, k := range q.keys {
		f, ok := q.fields.Lookup(k.Field)
		if !ok {
			return nil, &FieldError{Kind: ErrUnknownSortField, Field: k.Field}
		}
		out[i] = f
	}
	return out, nil
}

func (q *SliceQuery[T]) sorted() ([]T, error) {
	getters, err := q.getters()
	if err != nil {
		return nil, err
	}
	out := slices.Clone(q.items)
	if len(getters) == 0 {
		return out, nil
	}
	slices.SortStableFunc(out, func(a, b T) int {
		for i, g := range getters {
			c := compareValues(g.Get(a), g.Get(b))
			if q.keys[i].Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out, nil
}

// compareValues orders two field values of the same field. nil sorts first.
// Numbers compare by kind, so named and narrow numeric types sort numerically.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case uuid.UUID:
		if y, ok := b.(uuid.UUID); ok {
			return strings.Compare(x.String(), y.String())
		}
	case *string:
		if y, ok := b.(*string); ok {
			return compareValues(deref(x), deref(y))
		}
	}
	if c, ok := compareKinds(reflect.ValueOf(a), reflect.ValueOf(b)); ok {
		return c
	}
	if x, ok := a.(fmt.Stringer); ok {
		if y, ok := b.(fmt.Stringer); ok {
			return strings.Compare(x.String(), y.String())
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// compareKinds compares scalar values of the same kind family.
func compareKinds(x, y reflect.Value) (int, bool) {
	switch {
	case isInt(x.Kind()) && isInt(y.Kind()):
		return cmp.Compare(x.Int(), y.Int()), true
	case isUint(x.Kind()) && isUint(y.Kind()):
		return cmp.Compare(x.Uint(), y.Uint()), true
	case isFloat(x.Kind()) && isFloat(y.Kind()):
		return cmp.Compare(x.Float(), y.Float()), true
	case x.Kind() == reflect.String && y.Kind() == reflect.String:
		return cmp.Compare(x.String(), y.String()), true
	case x.Kind() == reflect.Bool && y.Kind() == reflect.Bool:
		switch bx, by := x.Bool(), y.Bool(); {
		case bx == by:
			return 0, true
		case !bx:
			return -1, true
		default:
			return 1, true
		}
	}
	return 0, false
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
