package models

import (
	"time"

	"mybook/internal/domain/book"
	"mybook/internal/projection"

	"github.com/google/uuid"
)

// BookDto is the external representation of a book.
type BookDto struct {
	ID              uuid.UUID `json:"id"`
	AuthorID        uuid.UUID `json:"authorId"`
	Title           string    `json:"title"`
	ISBN            string    `json:"isbn"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	PublicationDate time.Time `json:"publicationDate"`
	Publisher       string    `json:"publisher"`
}

// BookForManipulation is the body accepted when creating or replacing a book.
type BookForManipulation struct {
	Title           string    `json:"title"`
	ISBN            string    `json:"isbn"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	PublicationDate time.Time `json:"publicationDate"`
	Publisher       string    `json:"publisher"`
}

// Details converts the request body into domain book details.
func (b BookForManipulation) Details() book.Details {
	return book.Details{
		Title:           b.Title,
		ISBN:            b.ISBN,
		Description:     b.Description,
		Category:        b.Category,
		PublicationDate: b.PublicationDate,
		Publisher:       b.Publisher,
	}
}

// BookFields lists the shapeable fields of BookDto.
var BookFields = projection.NewFields(
	projection.NewField("id", func(b BookDto) any { return b.ID }),
	projection.NewField("authorId", func(b BookDto) any { return b.AuthorID }),
	projection.NewField("title", func(b BookDto) any { return b.Title }),
	projection.NewField("isbn", func(b BookDto) any { return b.ISBN }),
	projection.NewField("description", func(b BookDto) any { return b.Description }),
	projection.NewField("category", func(b BookDto) any { return b.Category }),
	projection.NewField("publicationDate", func(b BookDto) any { return b.PublicationDate }),
	projection.NewField("publisher", func(b BookDto) any { return b.Publisher }),
)

// BookEntityFields exposes book.Book by internal field name for in-memory ordering.
var BookEntityFields = projection.NewFields(
	projection.NewField("ID", func(b book.Book) any { return b.ID }),
	projection.NewField("AuthorID", func(b book.Book) any { return b.AuthorID }),
	projection.NewField("Title", func(b book.Book) any { return b.Title }),
	projection.NewField("ISBN", func(b book.Book) any { return b.ISBN }),
	projection.NewField("Description", func(b book.Book) any { return b.Description }),
	projection.NewField("Category", func(b book.Book) any { return b.Category }),
	projection.NewField("PublicationDate", func(b book.Book) any { return b.PublicationDate }),
	projection.NewField("Publisher", func(b book.Book) any { return b.Publisher }),
)

// ToBookDto maps a stored book to its external representation.
func ToBookDto(b book.Book) BookDto {
	return BookDto{
		ID:              b.ID,
		AuthorID:        b.AuthorID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		Description:     b.Description,
		Category:        b.Category,
		PublicationDate: b.PublicationDate,
		Publisher:       b.Publisher,
	}
}

// ToBookForManipulation returns the editable view of b, the document a JSON
// Patch is applied to.
func ToBookForManipulation(b book.Book) BookForManipulation {
	return BookForManipulation{
		Title:           b.Title,
		ISBN:            b.ISBN,
		Description:     b.Description,
		Category:        b.Category,
		PublicationDate: b.PublicationDate,
		Publisher:       b.Publisher,
	}
}
