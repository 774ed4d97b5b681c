package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"mybook/internal/config"
	"mybook/internal/http/handlers"
	middlewarex "mybook/internal/http/middleware"
	"mybook/internal/services/catalog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config  config.Cfg
	Catalog *catalog.Service
	// Limiter is optional; nil disables rate limiting.
	Limiter *middlewarex.RateLimiter
}

// NewRouter creates the HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("req_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(chimw.Recoverer)
	if len(deps.Config.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: deps.Config.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{"X-Pagination", "Location"},
		}).Handler)
	}

	// Health check (public, never rate limited)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"env":    deps.Config.App.Env,
		})
	})

	r.Route("/api", func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(deps.Limiter.Middleware)
		}

		r.Get("/", handlers.Root())

		r.Route("/authors", func(r chi.Router) {
			r.Get("/all", handlers.ListAuthors(deps.Catalog))
			r.Post("/", handlers.CreateAuthor(deps.Catalog))
			r.Get("/{id}", handlers.GetAuthor(deps.Catalog))
			r.Put("/{id}", handlers.UpdateAuthor(deps.Catalog))
			r.Patch("/{id}", handlers.PatchAuthor(deps.Catalog))
			r.Delete("/{id}", handlers.DeleteAuthor(deps.Catalog))
			r.Post("/{id}/books", handlers.CreateBookForAuthor(deps.Catalog))
			r.Put("/{id}/books/{bookId}", handlers.UpsertBookForAuthor(deps.Catalog))
			r.Patch("/{id}/books/{bookId}", handlers.PatchBookForAuthor(deps.Catalog))
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", handlers.ListBooks(deps.Catalog))
			r.Get("/{id}", handlers.GetBook(deps.Catalog))
			r.Delete("/{id}", handlers.DeleteBook(deps.Catalog))
		})
	})

	return r
}
