package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"mybook/internal/models"
	"mybook/internal/services/catalog"

	"github.com/google/uuid"
)

// ListBooks handles book listing requests using the catalog service
func ListBooks(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := catalog.BooksRequest{
			Page:          parsePage(r),
			PublisherName: q.Get("publisherName"),
			SearchQuery:   q.Get("searchQuery"),
		}
		if v := q.Get("authorId"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				writeProblem(w, http.StatusBadRequest, "authorId must be a UUID")
				return
			}
			req.AuthorID = &id
		}

		resp, err := svc.ListBooks(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeList(w, resp)
	}
}

func GetBook(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		rec, err := svc.GetBook(r.Context(), id, r.URL.Query().Get("fields"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// CreateBookForAuthor adds a book under the author in the path
func CreateBookForAuthor(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, ok := pathID(w, r)
		if !ok {
			return
		}
		var in models.BookForManipulation
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeProblem(w, http.StatusBadRequest, "bad json")
			return
		}
		dto, err := svc.CreateBookForAuthor(r.Context(), authorID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Location", "/api/books/"+dto.ID.String())
		writeJSON(w, http.StatusCreated, dto)
	}
}

// UpsertBookForAuthor replaces a book, creating it when it does not exist
func UpsertBookForAuthor(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, bookID, ok := bookPath(w, r)
		if !ok {
			return
		}
		var in models.BookForManipulation
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeProblem(w, http.StatusBadRequest, "bad json")
			return
		}
		dto, created, err := svc.UpsertBookForAuthor(r.Context(), authorID, bookID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeUpserted(w, dto, created)
	}
}

// PatchBookForAuthor applies a JSON Patch document to a book, creating it
// from an empty body when it does not exist
func PatchBookForAuthor(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, bookID, ok := bookPath(w, r)
		if !ok {
			return
		}
		patch, err := io.ReadAll(r.Body)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "unreadable body")
			return
		}
		dto, created, err := svc.PatchBookForAuthor(r.Context(), authorID, bookID, patch)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeUpserted(w, dto, created)
	}
}

func bookPath(w http.ResponseWriter, r *http.Request) (authorID, bookID uuid.UUID, ok bool) {
	if authorID, ok = pathID(w, r); !ok {
		return
	}
	bookID, ok = pathUUID(w, r, "bookId")
	return
}

// writeUpserted answers 201 with the book when it was created, 204 otherwise
func writeUpserted(w http.ResponseWriter, dto *models.BookDto, created bool) {
	if !created {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Location", "/api/books/"+dto.ID.String())
	writeJSON(w, http.StatusCreated, dto)
}

func DeleteBook(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteBook(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
