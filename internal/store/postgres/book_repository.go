package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mybook/internal/domain/book"
	"mybook/internal/projection"
	"mybook/internal/store/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookColumns = "id, author_id, title, isbn, description, category, publication_date, publisher"

var bookSortColumns = map[string]string{
	"ID":              "id",
	"AuthorID":        "author_id",
	"Title":           "title",
	"ISBN":            "isbn",
	"Description":     "description",
	"Category":        "category",
	"PublicationDate": "publication_date",
	"Publisher":       "publisher",
}

// bookRepository implements BookRepository with pure data access
type bookRepository struct {
	db querier
}

// NewBookRepository creates a new book repository
func NewBookRepository(db querier) *bookRepository {
	return &bookRepository{db: db}
}

// Query builds the filtered book listing query. The search matches book text
// and the owning author's name and description.
func (r *bookRepository) Query(filter repositories.BookFilter) projection.Query[book.Book] {
	q := newQuery[book.Book](r.db, "books", bookColumns, bookSortColumns)
	if p := strings.TrimSpace(filter.PublisherName); p != "" {
		q = q.Where("publisher = $%d", p)
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = $%d", *filter.AuthorID)
	}
	if search := strings.TrimSpace(filter.SearchQuery); search != "" {
		q = q.Where(`(
			(title || ' ' || description || ' ' || publisher || ' ' || isbn || ' ' || category) ILIKE $%[1]d
			OR EXISTS (
				SELECT 1 FROM authors a
				WHERE a.id = books.author_id AND (a.name || ' ' || a.description) ILIKE $%[1]d
			))`, likePattern(search))
	}
	return q
}

// FindByID finds a book by ID
func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	b, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[book.Book])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return b, err
}

// Create inserts a new book record
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO books (id, author_id, title, isbn, description, category, publication_date, publisher)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.AuthorID, b.Title, b.ISBN, b.Description, b.Category, b.PublicationDate, b.Publisher)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// Update modifies an existing book record. The owning author is not changed.
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE books
		SET title = $1, isbn = $2, description = $3, category = $4, publication_date = $5, publisher = $6
		WHERE id = $7`,
		b.Title, b.ISBN, b.Description, b.Category, b.PublicationDate, b.Publisher, b.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete removes a book
func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
