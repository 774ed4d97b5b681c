package postgres

import (
	"mybook/internal/store/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo groups the Postgres repositories sharing one pool.
type Repo struct {
	db      *pgxpool.Pool
	Authors repositories.AuthorRepository
	Books   repositories.BookRepository
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db:      db,
		Authors: NewAuthorRepository(db),
		Books:   NewBookRepository(db),
	}
}

// Expose the underlying pool for migrations and health checks.
func (r *Repo) DB() *pgxpool.Pool { return r.db }
