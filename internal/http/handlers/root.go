package handlers

import "net/http"

type link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// Root lists the API entry points
func Root() http.HandlerFunc {
	links := []link{
		{Href: "/api", Rel: "self", Method: http.MethodGet},
		{Href: "/api/authors/all", Rel: "authors", Method: http.MethodGet},
		{Href: "/api/books", Rel: "books", Method: http.MethodGet},
		{Href: "/api/authors", Rel: "create_author", Method: http.MethodPost},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, links)
	}
}
