package models

import (
	"time"

	"mybook/internal/domain/author"
	"mybook/internal/projection"

	"github.com/google/uuid"
)

// AuthorDto is the external representation of an author.
type AuthorDto struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Age         int       `json:"age"`
}

// AuthorForManipulation is the body accepted when creating or replacing an author.
type AuthorForManipulation struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// AuthorFields lists the shapeable fields of AuthorDto.
var AuthorFields = projection.NewFields(
	projection.NewField("id", func(a AuthorDto) any { return a.ID }),
	projection.NewField("name", func(a AuthorDto) any { return a.Name }),
	projection.NewField("description", func(a AuthorDto) any { return a.Description }),
	projection.NewField("dateOfBirth", func(a AuthorDto) any { return a.DateOfBirth }),
	projection.NewField("age", func(a AuthorDto) any { return a.Age }),
)

// AuthorEntityFields exposes author.Author by internal field name for in-memory ordering.
var AuthorEntityFields = projection.NewFields(
	projection.NewField("ID", func(a author.Author) any { return a.ID }),
	projection.NewField("Name", func(a author.Author) any { return a.Name }),
	projection.NewField("Description", func(a author.Author) any { return a.Description }),
	projection.NewField("DateOfBirth", func(a author.Author) any { return a.DateOfBirth }),
)

// ToAuthorDto copies an author into its external representation.
func ToAuthorDto(a author.Author, now time.Time) AuthorDto {
	return AuthorDto{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		DateOfBirth: a.DateOfBirth,
		Age:         a.Age(now),
	}
}

// ToAuthorForManipulation returns the editable view of a, the document a
// JSON Patch is applied to.
func ToAuthorForManipulation(a author.Author) AuthorForManipulation {
	return AuthorForManipulation{
		Name:        a.Name,
		Description: a.Description,
		DateOfBirth: a.DateOfBirth,
	}
}
