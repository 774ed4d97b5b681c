package catalog

import (
	"context"
	"errors"
	"slices"
	"time"

	"mybook/internal/domain/author"
	"mybook/internal/domain/book"
	"mybook/internal/models"
	"mybook/internal/projection"
	"mybook/internal/store/repositories"

	"github.com/google/uuid"
)

// requiredFields are always present in shaped output so clients can address
// the resource.
const requiredFields = "id"

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = repositories.ErrNotFound

// Service handles author and book listing and maintenance
type Service struct {
	authors  repositories.AuthorRepository
	books    repositories.BookRepository
	registry *projection.Registry
	limits   PageLimits
	now      func() time.Time
}

// NewService creates a new catalog service
func NewService(authors repositories.AuthorRepository, books repositories.BookRepository, registry *projection.Registry, limits PageLimits) *Service {
	return &Service{
		authors:  authors,
		books:    books,
		registry: registry,
		limits:   limits,
		now:      time.Now,
	}
}

// ListAuthors retrieves one page of authors, sorted and shaped per request
func (s *Service) ListAuthors(ctx context.Context, req AuthorsRequest) (*ListResponse, error) {
	req.Validate(s.limits)

	mapping, err := projection.LookupMapping[models.AuthorDto, author.Author](s.registry)
	if err != nil {
		return nil, &ServiceError{Op: "list_authors", Err: err}
	}
	if err := checkRequest(mapping, models.AuthorFields, req.Page); err != nil {
		return nil, &ServiceError{Op: "list_authors", Err: err}
	}

	q := s.authors.Query(repositories.AuthorFilter{FullName: req.FullName, SearchQuery: req.SearchQuery})
	q, err = projection.ApplySort(q, req.OrderBy, mapping)
	if err != nil {
		return nil, &ServiceError{Op: "list_authors", Err: err}
	}
	page, err := projection.CreatePagedList(ctx, q, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, &ServiceError{Op: "list_authors", Err: err}
	}

	now := s.now()
	dtos := projection.Map(page, func(a author.Author) models.AuthorDto { return models.ToAuthorDto(a, now) })
	return shapePage(dtos, models.AuthorFields, req.Fields, "list_authors")
}

// GetAuthor retrieves one author shaped to fields
func (s *Service) GetAuthor(ctx context.Context, id uuid.UUID, fields string) (projection.ShapedRecord, error) {
	if err := projection.CheckFields(models.AuthorFields, fields); err != nil {
		return projection.ShapedRecord{}, &ServiceError{Op: "get_author", Err: err}
	}
	a, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return projection.ShapedRecord{}, &ServiceError{Op: "get_author", Err: err}
	}
	dto := models.ToAuthorDto(*a, s.now())
	rec, err := projection.ShapeData(models.AuthorFields, &dto, fields, requiredFields)
	if err != nil {
		return projection.ShapedRecord{}, &ServiceError{Op: "get_author", Err: err}
	}
	return rec, nil
}

// CreateAuthor validates and stores a new author
func (s *Service) CreateAuthor(ctx context.Context, in models.AuthorForManipulation) (*models.AuthorDto, error) {
	a, err := author.New(in.Name, in.Description, in.DateOfBirth)
	if err != nil {
		return nil, &ServiceError{Op: "create_author", Err: err}
	}
	if err := s.authors.Create(ctx, a); err != nil {
		return nil, &ServiceError{Op: "create_author", Err: err}
	}
	dto := models.ToAuthorDto(*a, s.now())
	return &dto, nil
}

// UpdateAuthor replaces an existing author's fields
func (s *Service) UpdateAuthor(ctx context.Context, id uuid.UUID, in models.AuthorForManipulation) error {
	a, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return &ServiceError{Op: "update_author", Err: err}
	}
	if err := a.Update(in.Name, in.Description, in.DateOfBirth); err != nil {
		return &ServiceError{Op: "update_author", Err: err}
	}
	if err := s.authors.Update(ctx, a); err != nil {
		return &ServiceError{Op: "update_author", Err: err}
	}
	return nil
}

// PatchAuthor applies a JSON Patch to an author's editable fields and
// revalidates the result
func (s *Service) PatchAuthor(ctx context.Context, id uuid.UUID, patch []byte) error {
	a, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return &ServiceError{Op: "patch_author", Err: err}
	}
	in := models.ToAuthorForManipulation(*a)
	if err := applyPatch(&in, patch); err != nil {
		return &ServiceError{Op: "patch_author", Err: err}
	}
	if err := a.Update(in.Name, in.Description, in.DateOfBirth); err != nil {
		return &ServiceError{Op: "patch_author", Err: err}
	}
	if err := s.authors.Update(ctx, a); err != nil {
		return &ServiceError{Op: "patch_author", Err: err}
	}
	return nil
}

// DeleteAuthor removes an author and its books
func (s *Service) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	if err := s.authors.Delete(ctx, id); err != nil {
		return &ServiceError{Op: "delete_author", Err: err}
	}
	return nil
}

// ListBooks retrieves one page of books, sorted and shaped per request
func (s *Service) ListBooks(ctx context.Context, req BooksRequest) (*ListResponse, error) {
	req.Validate(s.limits)

	mapping, err := projection.LookupMapping[models.BookDto, book.Book](s.registry)
	if err != nil {
		return nil, &ServiceError{Op: "list_books", Err: err}
	}
	if err := checkRequest(mapping, models.BookFields, req.Page); err != nil {
		return nil, &ServiceError{Op: "list_books", Err: err}
	}

	q := s.books.Query(repositories.BookFilter{
		PublisherName: req.PublisherName,
		AuthorID:      req.AuthorID,
		SearchQuery:   req.SearchQuery,
	})
	q, err = projection.ApplySort(q, req.OrderBy, mapping)
	if err != nil {
		return nil, &ServiceError{Op: "list_books", Err: err}
	}
	page, err := projection.CreatePagedList(ctx, q, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, &ServiceError{Op: "list_books", Err: err}
	}

	return shapePage(projection.Map(page, models.ToBookDto), models.BookFields, req.Fields, "list_books")
}

// GetBook retrieves one book shaped to fields
func (s *Service) GetBook(ctx context.Context, id uuid.UUID, fields string) (projection.ShapedRecord, error) {
	if err := projection.CheckFields(models.BookFields, fields); err != nil {
		return projection.ShapedRecord{}, &ServiceError{Op: "get_book", Err: err}
	}
	b, err := s.books.FindByID(ctx, id)
	if err != nil {
		return projection.ShapedRecord{}, &ServiceError{Op: "get_book", Err: err}
	}
	dto := models.ToBookDto(*b)
	rec, err := projection.ShapeData(models.BookFields, &dto, fields, requiredFields)
	if err != nil {
		return projection.ShapedRecord{}, &ServiceError{Op: "get_book", Err: err}
	}
	return rec, nil
}

// CreateBookForAuthor validates and stores a new book owned by authorID
func (s *Service) CreateBookForAuthor(ctx context.Context, authorID uuid.UUID, in models.BookForManipulation) (*models.BookDto, error) {
	ok, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		return nil, &ServiceError{Op: "create_book", Err: err}
	}
	if !ok {
		return nil, &ServiceError{Op: "create_book", Err: ErrNotFound}
	}
	b, err := book.New(authorID, in.Details())
	if err != nil {
		return nil, &ServiceError{Op: "create_book", Err: err}
	}
	if err := s.books.Create(ctx, b); err != nil {
		return nil, &ServiceError{Op: "create_book", Err: err}
	}
	dto := models.ToBookDto(*b)
	return &dto, nil
}

// UpsertBookForAuthor replaces the book with bookID, or creates it under
// authorID when it does not exist. created reports which happened.
func (s *Service) UpsertBookForAuthor(ctx context.Context, authorID, bookID uuid.UUID, in models.BookForManipulation) (dto *models.BookDto, created bool, err error) {
	return s.putBook(ctx, "upsert_book", authorID, bookID, func(cur *models.BookForManipulation) error {
		*cur = in
		return nil
	})
}

// PatchBookForAuthor applies a JSON Patch to the book with bookID. A missing
// book is created from the patch applied to an empty body.
func (s *Service) PatchBookForAuthor(ctx context.Context, authorID, bookID uuid.UUID, patch []byte) (dto *models.BookDto, created bool, err error) {
	return s.putBook(ctx, "patch_book", authorID, bookID, func(in *models.BookForManipulation) error {
		return applyPatch(in, patch)
	})
}

// putBook hands the current editable view of the book (empty when missing) to
// edit, then validates and stores the result.
func (s *Service) putBook(ctx context.Context, op string, authorID, bookID uuid.UUID, edit func(*models.BookForManipulation) error) (*models.BookDto, bool, error) {
	ok, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		return nil, false, &ServiceError{Op: op, Err: err}
	}
	if !ok {
		return nil, false, &ServiceError{Op: op, Err: ErrNotFound}
	}

	current, err := s.books.FindByID(ctx, bookID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, &ServiceError{Op: op, Err: err}
	}

	var in models.BookForManipulation
	if current != nil {
		in = models.ToBookForManipulation(*current)
	}
	if err := edit(&in); err != nil {
		return nil, false, &ServiceError{Op: op, Err: err}
	}

	if current == nil {
		b, err := book.NewWithID(bookID, authorID, in.Details())
		if err != nil {
			return nil, false, &ServiceError{Op: op, Err: err}
		}
		if err := s.books.Create(ctx, b); err != nil {
			return nil, false, &ServiceError{Op: op, Err: err}
		}
		dto := models.ToBookDto(*b)
		return &dto, true, nil
	}

	if err := current.Update(in.Details()); err != nil {
		return nil, false, &ServiceError{Op: op, Err: err}
	}
	if err := s.books.Update(ctx, current); err != nil {
		return nil, false, &ServiceError{Op: op, Err: err}
	}
	dto := models.ToBookDto(*current)
	return &dto, false, nil
}

// DeleteBook removes a book
func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return &ServiceError{Op: "delete_book", Err: err}
	}
	return nil
}

// checkRequest rejects unknown ordering or shaping fields before any read.
func checkRequest[T any](mapping *projection.PropertyMapping, fields *projection.Fields[T], p Page) error {
	if err := projection.ValidateOrderBy(mapping, p.OrderBy); err != nil {
		return err
	}
	return projection.CheckFields(fields, p.Fields)
}

func shapePage[T any](page *projection.PagedList[T], fields *projection.Fields[T], selected, op string) (*ListResponse, error) {
	seq, err := projection.ShapeDataMany(fields, slices.Values(page.Items), selected, requiredFields)
	if err != nil {
		return nil, &ServiceError{Op: op, Err: err}
	}
	out := make([]projection.ShapedRecord, 0, len(page.Items))
	for rec, err := range seq {
		if err != nil {
			return nil, &ServiceError{Op: op, Err: err}
		}
		out = append(out, rec)
	}
	return &ListResponse{
		Value:      out,
		Pagination: page.Metadata(),
		HasNext:    page.HasNext(),
		HasPrev:    page.HasPrevious(),
	}, nil
}

// ServiceError represents a catalog service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "catalog service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err was caused by client input rather than a
// server fault.
func IsClientError(err error) bool {
	var ad author.DomainError
	var bd book.DomainError
	return errors.Is(err, projection.ErrUnknownSortField) ||
		errors.Is(err, ErrInvalidPatch) ||
		errors.Is(err, projection.ErrUnknownField) ||
		errors.As(err, &ad) || errors.As(err, &bd)
}
