package models

import (
	"testing"

	"mybook/internal/domain/author"
	"mybook/internal/domain/book"
	"mybook/internal/projection"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	am, err := projection.LookupMapping[AuthorDto, author.Author](r)
	require.NoError(t, err)
	age, ok := am.Lookup("Age")
	require.True(t, ok)
	assert.True(t, age.Reverse)
	assert.Equal(t, []string{"DateOfBirth"}, age.InternalFields)

	bm, err := projection.LookupMapping[BookDto, book.Book](r)
	require.NoError(t, err)
	pub, ok := bm.Lookup("publication")
	require.True(t, ok)
	assert.Equal(t, []string{"PublicationDate", "Title"}, pub.InternalFields)

	_, err = projection.LookupMapping[BookDto, author.Author](r)
	assert.ErrorIs(t, err, projection.ErrMappingNotFound)
}

// Every internal field named by a mapping must be sortable in memory.
func TestOrderingTargetsExist(t *testing.T) {
	for name, target := range authorOrdering {
		for _, f := range target.InternalFields {
			_, ok := AuthorEntityFields.Lookup(f)
			assert.True(t, ok, "author %s -> %s", name, f)
		}
	}
	for name, target := range bookOrdering {
		for _, f := range target.InternalFields {
			_, ok := BookEntityFields.Lookup(f)
			assert.True(t, ok, "book %s -> %s", name, f)
		}
	}
}

// Every DTO field must be orderable.
func TestDtoFieldsAreMapped(t *testing.T) {
	for _, n := range AuthorFields.Names() {
		_, ok := authorOrdering[n]
		assert.True(t, ok, n)
	}
	for _, n := range BookFields.Names() {
		_, ok := bookOrdering[n]
		assert.True(t, ok, n)
	}
}

func TestBookConversions(t *testing.T) {
	b, err := book.New(uuid.New(), book.Details{Title: "Beloved", ISBN: "978-1400033416", Publisher: "Knopf", Category: "Novel"})
	require.NoError(t, err)

	dto := ToBookDto(*b)
	assert.Equal(t, b.ID, dto.ID)
	assert.Equal(t, b.AuthorID, dto.AuthorID)
	assert.Equal(t, "Beloved", dto.Title)

	// the editable view carries back into identical details
	assert.Equal(t, book.Details{Title: "Beloved", ISBN: "978-1400033416", Publisher: "Knopf", Category: "Novel"},
		ToBookForManipulation(*b).Details())
}
