package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mybook/internal/domain/author"
	"mybook/internal/projection"
	"mybook/internal/store/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const authorColumns = "id, name, description, date_of_birth"

// entity field -> column
var authorSortColumns = map[string]string{
	"ID":          "id",
	"Name":        "name",
	"Description": "description",
	"DateOfBirth": "date_of_birth",
}

// authorRepository implements AuthorRepository with pure data access
type authorRepository struct {
	db querier
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db querier) *authorRepository {
	return &authorRepository{db: db}
}

// Query builds the filtered author listing query
func (r *authorRepository) Query(filter repositories.AuthorFilter) projection.Query[author.Author] {
	q := newQuery[author.Author](r.db, "authors", authorColumns, authorSortColumns)
	if name := strings.TrimSpace(filter.FullName); name != "" {
		q = q.Where("name = $%d", name)
	}
	if search := strings.TrimSpace(filter.SearchQuery); search != "" {
		q = q.Where("(name || ' ' || description) ILIKE $%d", likePattern(search))
	}
	return q
}

// FindByID finds an author by ID
func (r *authorRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	rows, err := r.db.Query(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[author.Author])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return a, err
}

// Exists reports whether an author with the ID is stored
func (r *authorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// Create inserts a new author record
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO authors (id, name, description, date_of_birth)
		VALUES ($1, $2, $3, $4)`,
		a.ID, a.Name, a.Description, a.DateOfBirth)
	if err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

// Update modifies an existing author record
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE authors
		SET name = $1, description = $2, date_of_birth = $3
		WHERE id = $4`,
		a.Name, a.Description, a.DateOfBirth, a.ID)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete removes an author; books go with it through the foreign key
func (r *authorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
