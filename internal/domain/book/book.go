package book

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Book is a stored book record. Every book belongs to one author.
type Book struct {
	ID              uuid.UUID `db:"id"`
	AuthorID        uuid.UUID `db:"author_id"`
	Title           string    `db:"title"`
	ISBN            string    `db:"isbn"`
	Description     string    `db:"description"`
	Category        string    `db:"category"`
	PublicationDate time.Time `db:"publication_date"`
	Publisher       string    `db:"publisher"`
}

// Details holds the client-editable fields of a book.
type Details struct {
	Title           string
	ISBN            string
	Description     string
	Category        string
	PublicationDate time.Time
	Publisher       string
}

// New creates a book for an author after validating its details
func New(authorID uuid.UUID, d Details) (*Book, error) {
	return NewWithID(uuid.New(), authorID, d)
}

// NewWithID is New with a caller-chosen ID, for creating through PUT or PATCH.
func NewWithID(id, authorID uuid.UUID, d Details) (*Book, error) {
	if authorID == uuid.Nil {
		return nil, DomainError{Code: ErrAuthorRequired, Message: "A book needs an author."}
	}
	b := &Book{ID: id, AuthorID: authorID}
	if err := b.Update(d); err != nil {
		return nil, err
	}
	return b, nil
}

// Update replaces the book's details
func (b *Book) Update(d Details) error {
	d.Title = strings.TrimSpace(d.Title)
	if err := d.validate(); err != nil {
		return err
	}
	b.Title = d.Title
	b.ISBN = strings.TrimSpace(d.ISBN)
	b.Description = d.Description
	b.Category = d.Category
	b.PublicationDate = d.PublicationDate
	b.Publisher = strings.TrimSpace(d.Publisher)
	return nil
}

var limits = []struct {
	field string
	code  string
	max   int
	get   func(Details) string
}{
	{"title", ErrTitleTooLong, 100, func(d Details) string { return d.Title }},
	{"description", ErrDescriptionTooLong, 1500, func(d Details) string { return d.Description }},
	{"category", ErrCategoryTooLong, 50, func(d Details) string { return d.Category }},
	{"publisher", ErrPublisherTooLong, 50, func(d Details) string { return d.Publisher }},
}

func (d Details) validate() error {
	if d.Title == "" {
		return DomainError{Code: ErrTitleRequired, Message: "You should fill out a title."}
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.get(d)) > l.max {
			return DomainError{
				Code:    l.code,
				Message: fmt.Sprintf("The %s shouldn't have more than %d characters.", l.field, l.max),
			}
		}
	}
	return nil
}

// DomainError represents a domain-level validation error
type DomainError struct {
	Message string
	Code    string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("domain error [%s]: %s", e.Code, e.Message)
}

// Domain error codes
const (
	ErrAuthorRequired     = "AUTHOR_REQUIRED"
	ErrTitleRequired      = "TITLE_REQUIRED"
	ErrTitleTooLong       = "TITLE_TOO_LONG"
	ErrDescriptionTooLong = "DESCRIPTION_TOO_LONG"
	ErrCategoryTooLong    = "CATEGORY_TOO_LONG"
	ErrPublisherTooLong   = "PUBLISHER_TOO_LONG"
)
