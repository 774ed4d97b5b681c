package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"mybook/internal/projection"
	"mybook/internal/services/catalog"

	"github.com/rs/zerolog/hlog"
)

// problem is a minimal RFC 7807 body
type problem struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{Status: status, Title: http.StatusText(status), Detail: detail})
}

// writeError maps service errors onto HTTP statuses. Anything not caused by
// the client is logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *projection.FieldError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "")
	case errors.As(err, &fe) && errors.Is(err, projection.ErrUnknownSortField):
		writeProblem(w, http.StatusBadRequest, "Not all requested ordering fields exist on the resource: "+fe.Field)
	case errors.As(err, &fe) && errors.Is(err, projection.ErrUnknownField):
		writeProblem(w, http.StatusBadRequest, "Not all requested data shaping fields exist on the resource: "+fe.Field)
	case catalog.IsClientError(err):
		writeProblem(w, http.StatusBadRequest, errors.Unwrap(err).Error())
	default:
		l := hlog.FromRequest(r).Error().Err(err)
		if errors.Is(err, projection.ErrMappingNotFound) {
			l = l.Bool("misconfigured", true)
		}
		l.Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "")
	}
}

// queryInt parses an integer query parameter, ignoring malformed values
func queryInt(r *http.Request, name string) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
