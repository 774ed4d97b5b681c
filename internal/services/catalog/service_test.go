package catalog

import (
	"context"
	"testing"
	"time"

	"mybook/internal/domain/author"
	"mybook/internal/models"
	"mybook/internal/projection"
	"mybook/internal/store/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, map[string]uuid.UUID) {
	t.Helper()
	store := memory.New()
	svc := NewService(store.Authors(), store.Books(), models.MustRegistry(), PageLimits{DefaultPageSize: 5, MaxPageSize: 10})
	svc.now = func() time.Time { return fixedNow }

	ctx := context.Background()
	ids := map[string]uuid.UUID{}
	for _, a := range []models.AuthorForManipulation{
		{Name: "Frank Herbert", Description: "Science fiction", DateOfBirth: time.Date(1920, 10, 8, 0, 0, 0, 0, time.UTC)},
		{Name: "Ursula K. Le Guin", Description: "Fantasy", DateOfBirth: time.Date(1929, 10, 21, 0, 0, 0, 0, time.UTC)},
		{Name: "Ann Leckie", Description: "Space opera", DateOfBirth: time.Date(1966, 3, 2, 0, 0, 0, 0, time.UTC)},
	} {
		dto, err := svc.CreateAuthor(ctx, a)
		require.NoError(t, err)
		ids[a.Name] = dto.ID
	}
	for _, b := range []struct {
		owner string
		in    models.BookForManipulation
	}{
		{"Frank Herbert", models.BookForManipulation{Title: "Dune", Publisher: "Chilton", PublicationDate: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)}},
		{"Frank Herbert", models.BookForManipulation{Title: "Dune Messiah", Publisher: "Putnam", PublicationDate: time.Date(1969, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{"Ann Leckie", models.BookForManipulation{Title: "Ancillary Justice", Publisher: "Orbit", PublicationDate: time.Date(2013, 10, 1, 0, 0, 0, 0, time.UTC)}},
	} {
		dto, err := svc.CreateBookForAuthor(ctx, ids[b.owner], b.in)
		require.NoError(t, err)
		ids[b.in.Title] = dto.ID
	}
	return svc, ids
}

func values(t *testing.T, recs []projection.ShapedRecord, field string) []any {
	t.Helper()
	out := make([]any, len(recs))
	for i, r := range recs {
		v, ok := r.Get(field)
		require.True(t, ok, field)
		out[i] = v
	}
	return out
}

func TestListAuthors_DefaultOrderAndPaging(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.ListAuthors(context.Background(), AuthorsRequest{Page: Page{PageSize: 2}})
	require.NoError(t, err)

	assert.Equal(t, []any{"Ann Leckie", "Frank Herbert"}, values(t, resp.Value, "name"))
	assert.Equal(t, projection.Metadata{TotalCount: 3, PageSize: 2, CurrentPage: 1, TotalPages: 2}, resp.Pagination)
	assert.True(t, resp.HasNext)
	assert.False(t, resp.HasPrev)
}

func TestListAuthors_AgeIsReversedDateOfBirth(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.ListAuthors(context.Background(), AuthorsRequest{Page: Page{OrderBy: "age", Fields: "name,age"}})
	require.NoError(t, err)

	// youngest first
	assert.Equal(t, []any{"Ann Leckie", "Ursula K. Le Guin", "Frank Herbert"}, values(t, resp.Value, "name"))
	assert.Equal(t, []any{58, 94, 103}, values(t, resp.Value, "age"))
	assert.Equal(t, []string{"name", "age", "id"}, resp.Value[0].Names())
}

func TestListAuthors_SearchAndFullName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.ListAuthors(ctx, AuthorsRequest{SearchQuery: "fiction"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Frank Herbert"}, values(t, resp.Value, "name"))

	resp, err = svc.ListAuthors(ctx, AuthorsRequest{FullName: "Ann Leckie"})
	require.NoError(t, err)
	assert.Len(t, resp.Value, 1)
}

func TestListAuthors_ClientErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ListAuthors(ctx, AuthorsRequest{Page: Page{OrderBy: "height"}})
	require.ErrorIs(t, err, projection.ErrUnknownSortField)
	assert.True(t, IsClientError(err))

	_, err = svc.ListAuthors(ctx, AuthorsRequest{Page: Page{Fields: "name,height"}})
	require.ErrorIs(t, err, projection.ErrUnknownField)
	assert.True(t, IsClientError(err))
}

func TestListAuthors_MissingMappingIsServerError(t *testing.T) {
	store := memory.New()
	svc := NewService(store.Authors(), store.Books(), projection.NewRegistry(), PageLimits{DefaultPageSize: 5, MaxPageSize: 10})

	_, err := svc.ListAuthors(context.Background(), AuthorsRequest{})
	require.ErrorIs(t, err, projection.ErrMappingNotFound)
	assert.False(t, IsClientError(err))
}

func TestListBooks_FiltersAndCompositeOrder(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()

	herbert := ids["Frank Herbert"]
	resp, err := svc.ListBooks(ctx, BooksRequest{AuthorID: &herbert, Page: Page{OrderBy: "publication desc", Fields: "title"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"Dune Messiah", "Dune"}, values(t, resp.Value, "title"))

	resp, err = svc.ListBooks(ctx, BooksRequest{PublisherName: "Orbit"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Ancillary Justice"}, values(t, resp.Value, "title"))

	// search matches the author description
	resp, err = svc.ListBooks(ctx, BooksRequest{SearchQuery: "space opera"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Ancillary Justice"}, values(t, resp.Value, "title"))
}

func TestListBooks_PageSizeClamped(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.ListBooks(context.Background(), BooksRequest{Page: Page{PageSize: 500, PageNumber: -3}})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Pagination.PageSize)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, []any{"Ancillary Justice", "Dune", "Dune Messiah"}, values(t, resp.Value, "title"))
}

func TestGetAuthor(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()

	rec, err := svc.GetAuthor(ctx, ids["Ann Leckie"], "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, rec.Names())

	_, err = svc.GetAuthor(ctx, uuid.New(), "")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetAuthor(ctx, ids["Ann Leckie"], "shoeSize")
	require.ErrorIs(t, err, projection.ErrUnknownField)
}

func TestUpdateAndDeleteAuthor(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()
	id := ids["Frank Herbert"]

	err := svc.UpdateAuthor(ctx, id, models.AuthorForManipulation{Name: ""})
	assert.True(t, IsClientError(err))

	require.NoError(t, svc.UpdateAuthor(ctx, id, models.AuthorForManipulation{Name: "F. Herbert"}))
	rec, err := svc.GetAuthor(ctx, id, "name")
	require.NoError(t, err)
	name, _ := rec.Get("name")
	assert.Equal(t, "F. Herbert", name)

	require.NoError(t, svc.DeleteAuthor(ctx, id))
	resp, err := svc.ListBooks(ctx, BooksRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Value, 1)

	require.ErrorIs(t, svc.DeleteAuthor(ctx, id), ErrNotFound)
}

func TestCreateBookForAuthor(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBookForAuthor(ctx, uuid.New(), models.BookForManipulation{Title: "Orphan"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateBookForAuthor(ctx, ids["Ann Leckie"], models.BookForManipulation{})
	assert.True(t, IsClientError(err))

	dto, err := svc.CreateBookForAuthor(ctx, ids["Ann Leckie"], models.BookForManipulation{Title: "Ancillary Sword"})
	require.NoError(t, err)

	rec, err := svc.GetBook(ctx, dto.ID, "title,authorId")
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "authorId", "id"}, rec.Names())

	require.NoError(t, svc.DeleteBook(ctx, dto.ID))
	_, err = svc.GetBook(ctx, dto.ID, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListAuthors_BlankOrderByUsesDefault(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.ListAuthors(context.Background(), AuthorsRequest{Page: Page{OrderBy: "   "}})
	require.NoError(t, err)
	assert.Equal(t, []any{"Ann Leckie", "Frank Herbert", "Ursula K. Le Guin"}, values(t, resp.Value, "name"))
}

func TestPatchAuthor(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()
	id := ids["Ann Leckie"]

	require.NoError(t, svc.PatchAuthor(ctx, id, []byte(`[{"op":"replace","path":"/description","value":"Radch"}]`)))
	rec, err := svc.GetAuthor(ctx, id, "name,description")
	require.NoError(t, err)
	desc, _ := rec.Get("description")
	assert.Equal(t, "Radch", desc)
	name, _ := rec.Get("name")
	assert.Equal(t, "Ann Leckie", name)

	// the patched body is validated like a full update
	err = svc.PatchAuthor(ctx, id, []byte(`[{"op":"replace","path":"/name","value":""}]`))
	var de author.DomainError
	require.ErrorAs(t, err, &de)
	assert.True(t, IsClientError(err))

	for _, doc := range []string{
		`{"op":"replace"}`,
		`[{"op":"remove","path":"/nickname"}]`,
		`[{"op":"add","path":"/nickname","value":"x"}]`,
	} {
		err = svc.PatchAuthor(ctx, id, []byte(doc))
		require.ErrorIs(t, err, ErrInvalidPatch, doc)
		assert.True(t, IsClientError(err))
	}

	require.ErrorIs(t, svc.PatchAuthor(ctx, uuid.New(), []byte(`[]`)), ErrNotFound)
}

func TestUpsertBookForAuthor(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()
	owner := ids["Frank Herbert"]

	dto, created, err := svc.UpsertBookForAuthor(ctx, owner, ids["Dune"], models.BookForManipulation{Title: "Dune", Publisher: "Ace"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Ace", dto.Publisher)

	newID := uuid.New()
	dto, created, err = svc.UpsertBookForAuthor(ctx, owner, newID, models.BookForManipulation{Title: "Children of Dune"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, newID, dto.ID)
	assert.Equal(t, owner, dto.AuthorID)

	_, _, err = svc.UpsertBookForAuthor(ctx, owner, uuid.New(), models.BookForManipulation{})
	assert.True(t, IsClientError(err))

	_, _, err = svc.UpsertBookForAuthor(ctx, uuid.New(), newID, models.BookForManipulation{Title: "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPatchBookForAuthor(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()
	owner := ids["Frank Herbert"]

	dto, created, err := svc.PatchBookForAuthor(ctx, owner, ids["Dune Messiah"],
		[]byte(`[{"op":"replace","path":"/category","value":"Science fiction"}]`))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Science fiction", dto.Category)
	assert.Equal(t, "Dune Messiah", dto.Title)

	// a missing book is built from an empty body
	newID := uuid.New()
	dto, created, err = svc.PatchBookForAuthor(ctx, owner, newID,
		[]byte(`[{"op":"replace","path":"/title","value":"God Emperor of Dune"}]`))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, newID, dto.ID)

	_, _, err = svc.PatchBookForAuthor(ctx, owner, uuid.New(), []byte(`[]`))
	assert.True(t, IsClientError(err))
}
