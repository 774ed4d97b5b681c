package projection

import (
	"context"
	"fmt"
)

// PagedList is one page of an ordered query plus its pagination metadata.
type PagedList[T any] struct {
	Items       []T
	TotalCount  int
	PageSize    int
	CurrentPage int
}

// Metadata is the pagination summary sent to clients.
type Metadata struct {
	TotalCount  int `json:"totalCount"`
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// NewPagedList packages an already sliced page. pageSize must be positive.
func NewPagedList[T any](items []T, totalCount, pageNumber, pageSize int) (*PagedList[T], error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidArgument, pageSize)
	}
	if pageNumber < 1 {
		return nil, fmt.Errorf("%w: page number must be at least 1, got %d", ErrInvalidArgument, pageNumber)
	}
	if items == nil {
		items = []T{}
	}
	return &PagedList[T]{
		Items:       items,
		TotalCount:  totalCount,
		PageSize:    pageSize,
		CurrentPage: pageNumber,
	}, nil
}

// CreatePagedList counts q and reads page pageNumber (1-based) of it. The count
// and the slice are two separate reads; consistency between them is up to the
// query implementation.
func CreatePagedList[T any](ctx context.Context, q Query[T], pageNumber, pageSize int) (*PagedList[T], error) {
	if q == nil {
		return nil, invalidArgument("query")
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidArgument, pageSize)
	}
	if pageNumber < 1 {
		return nil, fmt.Errorf("%w: page number must be at least 1, got %d", ErrInvalidArgument, pageNumber)
	}

	count, err := q.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := q.Slice(ctx, (pageNumber-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return NewPagedList(items, count, pageNumber, pageSize)
}

// TotalPages is ceil(TotalCount / PageSize).
func (p *PagedList[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

func (p *PagedList[T]) HasPrevious() bool { return p.CurrentPage > 1 }

func (p *PagedList[T]) HasNext() bool { return p.CurrentPage < p.TotalPages() }

// Metadata returns the pagination summary of the page.
func (p *PagedList[T]) Metadata() Metadata {
	return Metadata{
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages(),
	}
}

// Map converts the items of a page, keeping its metadata.
func Map[T, U any](p *PagedList[T], fn func(T) U) *PagedList[U] {
	out := make([]U, len(p.Items))
	for i, it := range p.Items {
		out[i] = fn(it)
	}
	return &PagedList[U]{
		Items:       out,
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
	}
}
