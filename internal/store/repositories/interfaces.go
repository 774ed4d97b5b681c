package repositories

import (
	"context"
	"errors"

	"mybook/internal/domain/author"
	"mybook/internal/domain/book"
	"mybook/internal/projection"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// AuthorFilter narrows an author listing. Empty values do not filter.
type AuthorFilter struct {
	FullName    string
	SearchQuery string
}

// BookFilter narrows a book listing. Empty values do not filter.
type BookFilter struct {
	PublisherName string
	AuthorID      *uuid.UUID
	SearchQuery   string
}

// AuthorRepository defines the contract for author data access
type AuthorRepository interface {
	// Query returns an unordered, unexecuted query over matching authors.
	Query(filter AuthorFilter) projection.Query[author.Author]
	FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, a *author.Author) error
	Update(ctx context.Context, a *author.Author) error
	// Delete removes the author and its books.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookRepository defines the contract for book data access
type BookRepository interface {
	Query(filter BookFilter) projection.Query[book.Book]
	FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error)
	Create(ctx context.Context, b *book.Book) error
	Update(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}
