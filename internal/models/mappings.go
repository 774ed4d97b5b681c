package models

import (
	"fmt"

	"mybook/internal/domain/author"
	"mybook/internal/domain/book"
	"mybook/internal/projection"
)

// Ordering maps from external DTO fields to entity fields. Internal names are
// the entity field names; stores translate them to columns.
var (
	authorOrdering = map[string]projection.MappingTarget{
		"id":          projection.Target("ID"),
		"name":        projection.Target("Name"),
		"description": projection.Target("Description"),
		"dateOfBirth": projection.Target("DateOfBirth"),
		"age":         projection.Reversed("DateOfBirth"),
	}

	bookOrdering = map[string]projection.MappingTarget{
		"id":              projection.Target("ID"),
		"authorId":        projection.Target("AuthorID"),
		"title":           projection.Target("Title"),
		"isbn":            projection.Target("ISBN"),
		"description":     projection.Target("Description"),
		"category":        projection.Target("Category"),
		"publicationDate": projection.Target("PublicationDate"),
		"publisher":       projection.Target("Publisher"),
		"publication":     projection.Target("PublicationDate", "Title"),
	}
)

// NewRegistry builds the property mapping registry for every resource.
func NewRegistry() (*projection.Registry, error) {
	r := projection.NewRegistry()

	am, err := projection.NewPropertyMapping(authorOrdering)
	if err != nil {
		return nil, fmt.Errorf("author mapping: %w", err)
	}
	if err := projection.RegisterMapping[AuthorDto, author.Author](r, am); err != nil {
		return nil, err
	}

	bm, err := projection.NewPropertyMapping(bookOrdering)
	if err != nil {
		return nil, fmt.Errorf("book mapping: %w", err)
	}
	if err := projection.RegisterMapping[BookDto, book.Book](r, bm); err != nil {
		return nil, err
	}
	return r, nil
}

// MustRegistry is NewRegistry for program startup.
func MustRegistry() *projection.Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}
