package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"mybook/internal/models"
	"mybook/internal/services/catalog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListAuthors handles author listing requests using the catalog service
func ListAuthors(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := catalog.AuthorsRequest{
			Page:        parsePage(r),
			FullName:    q.Get("fullName"),
			SearchQuery: q.Get("searchQuery"),
		}

		resp, err := svc.ListAuthors(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeList(w, resp)
	}
}

// GetAuthor returns one shaped author
func GetAuthor(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		rec, err := svc.GetAuthor(r.Context(), id, r.URL.Query().Get("fields"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func CreateAuthor(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.AuthorForManipulation
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeProblem(w, http.StatusBadRequest, "bad json")
			return
		}
		dto, err := svc.CreateAuthor(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Location", "/api/authors/"+dto.ID.String())
		writeJSON(w, http.StatusCreated, dto)
	}
}

func UpdateAuthor(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var in models.AuthorForManipulation
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeProblem(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := svc.UpdateAuthor(r.Context(), id, in); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PatchAuthor applies a JSON Patch document to an author
func PatchAuthor(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		patch, err := io.ReadAll(r.Body)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "unreadable body")
			return
		}
		if err := svc.PatchAuthor(r.Context(), id, patch); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteAuthor(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteAuthor(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// parsePage reads the shared paging query parameters
func parsePage(r *http.Request) catalog.Page {
	q := r.URL.Query()
	return catalog.Page{
		PageNumber: queryInt(r, "pageNumber"),
		PageSize:   queryInt(r, "pageSize"),
		OrderBy:    q.Get("orderBy"),
		Fields:     q.Get("fields"),
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return pathUUID(w, r, "id")
}

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, param+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// writeList sends a page with its metadata in the X-Pagination header
func writeList(w http.ResponseWriter, resp *catalog.ListResponse) {
	meta, _ := json.Marshal(resp.Pagination)
	w.Header().Set("X-Pagination", string(meta))
	writeJSON(w, http.StatusOK, resp)
}
