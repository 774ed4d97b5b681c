// Package memory keeps authors and books in process memory. It backs tests
// and database-less runs.
package memory

import (
	"context"
	"strings"
	"sync"

	"mybook/internal/domain/author"
	"mybook/internal/domain/book"
	"mybook/internal/models"
	"mybook/internal/projection"
	"mybook/internal/store/repositories"

	"github.com/google/uuid"
)

// Store holds both resources so deleting an author can drop its books.
type Store struct {
	mu      sync.RWMutex
	authors map[uuid.UUID]author.Author
	books   map[uuid.UUID]book.Book
	// insertion order, used as the natural unsorted order
	authorOrder []uuid.UUID
	bookOrder   []uuid.UUID
}

func New() *Store {
	return &Store{
		authors: make(map[uuid.UUID]author.Author),
		books:   make(map[uuid.UUID]book.Book),
	}
}

func (s *Store) Authors() repositories.AuthorRepository { return authorRepo{s} }

func (s *Store) Books() repositories.BookRepository { return bookRepo{s} }

// snapshots copy the current rows so queries never see later writes.
func (s *Store) authorSnapshot() []author.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]author.Author, 0, len(s.authorOrder))
	for _, id := range s.authorOrder {
		out = append(out, s.authors[id])
	}
	return out
}

func (s *Store) bookSnapshot() ([]book.Book, map[uuid.UUID]author.Author) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]book.Book, 0, len(s.bookOrder))
	for _, id := range s.bookOrder {
		out = append(out, s.books[id])
	}
	owners := make(map[uuid.UUID]author.Author, len(s.authors))
	for id, a := range s.authors {
		owners[id] = a
	}
	return out, owners
}

type authorRepo struct{ s *Store }

func (r authorRepo) Query(filter repositories.AuthorFilter) projection.Query[author.Author] {
	q := projection.FromSlice(r.s.authorSnapshot(), models.AuthorEntityFields)
	if name := strings.TrimSpace(filter.FullName); name != "" {
		q = q.Where(func(a author.Author) bool { return a.Name == name })
	}
	if search := strings.TrimSpace(filter.SearchQuery); search != "" {
		q = q.Where(func(a author.Author) bool { return containsFold(search, a.Name, a.Description) })
	}
	return q
}

func (r authorRepo) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.authors[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (r authorRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.authors[id]
	return ok, nil
}

func (r authorRepo) Create(_ context.Context, a *author.Author) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.authors[a.ID]; !dup {
		r.s.authorOrder = append(r.s.authorOrder, a.ID)
	}
	r.s.authors[a.ID] = *a
	return nil
}

func (r authorRepo) Update(_ context.Context, a *author.Author) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.authors[a.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.s.authors[a.ID] = *a
	return nil
}

func (r authorRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.authors[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.authors, id)
	r.s.authorOrder = without(r.s.authorOrder, id)
	for bid, b := range r.s.books {
		if b.AuthorID == id {
			delete(r.s.books, bid)
			r.s.bookOrder = without(r.s.bookOrder, bid)
		}
	}
	return nil
}

type bookRepo struct{ s *Store }

func (r bookRepo) Query(filter repositories.BookFilter) projection.Query[book.Book] {
	books, owners := r.s.bookSnapshot()
	q := projection.FromSlice(books, models.BookEntityFields)
	if p := strings.TrimSpace(filter.PublisherName); p != "" {
		q = q.Where(func(b book.Book) bool { return b.Publisher == p })
	}
	if filter.AuthorID != nil {
		id := *filter.AuthorID
		q = q.Where(func(b book.Book) bool { return b.AuthorID == id })
	}
	if search := strings.TrimSpace(filter.SearchQuery); search != "" {
		q = q.Where(func(b book.Book) bool {
			a := owners[b.AuthorID]
			return containsFold(search, b.Title, b.Description, b.Publisher, b.ISBN, b.Category, a.Name, a.Description)
		})
	}
	return q
}

func (r bookRepo) FindByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.books[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &b, nil
}

func (r bookRepo) Create(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.authors[b.AuthorID]; !ok {
		return repositories.ErrNotFound
	}
	if _, dup := r.s.books[b.ID]; !dup {
		r.s.bookOrder = append(r.s.bookOrder, b.ID)
	}
	r.s.books[b.ID] = *b
	return nil
}

func (r bookRepo) Update(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[b.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.s.books[b.ID] = *b
	return nil
}

func (r bookRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.books, id)
	r.s.bookOrder = without(r.s.bookOrder, id)
	return nil
}

func containsFold(needle string, haystack ...string) bool {
	n := strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), n) {
			return true
		}
	}
	return false
}

func without(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
