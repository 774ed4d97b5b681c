package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mybook/internal/config"
	httpx "mybook/internal/http"
	middlewarex "mybook/internal/http/middleware"
	"mybook/internal/models"
	"mybook/internal/services/catalog"
	"mybook/internal/store/memory"
	"mybook/internal/store/postgres"
	"mybook/internal/store/repositories"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	cfg.SetupLogging()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init store
	var (
		authors repositories.AuthorRepository
		books   repositories.BookRepository
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool := postgres.MustOpen(ctx, cfg.DB.DSN, cfg.DB.ConnectTimeout)
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrate failed")
		}
		repo := postgres.NewRepo(pool)
		authors, books = repo.Authors, repo.Books
	default:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		store := memory.New()
		authors, books = store.Authors(), store.Books()
	}

	// Rate limiter backed by redis, if configured
	var limiter *middlewarex.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable; rate limiter fails open")
		}
		limiter = middlewarex.NewRateLimiter(middlewarex.NewRedisCounter(rdb), cfg.RateLimit.PermitLimit, cfg.RateLimit.Window)
	}

	svc := catalog.NewService(authors, books, models.MustRegistry(), catalog.PageLimits{
		DefaultPageSize: cfg.Paging.DefaultPageSize,
		MaxPageSize:     cfg.Paging.MaxPageSize,
	})

	// Router
	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:  cfg,
		Catalog: svc,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("store", cfg.DB.Driver).Msgf("library API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
