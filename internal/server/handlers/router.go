package handlers

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/server/config"
	"github.com/dmitrijs2005/gophdiary/internal/server/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API. ctx bounds the background work of the rate
// limiter.
func NewRouter(ctx context.Context, cfg *config.Config, users UserService, diaries DiaryService, logger logging.Logger) http.Handler {
	authHandler := NewAuthHandler(users, logger)
	diaryHandler := NewDiaryHandler(diaries, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
	})

	r.Route("/api/diaries", func(r chi.Router) {
		r.Use(middleware.BearerAuth([]byte(cfg.SecretKey)))
		r.Get("/author/{authorID}", diaryHandler.ListByAuthor)
		r.Get("/search", diaryHandler.Search)
		r.Post("/", diaryHandler.Create)
		r.Put("/{id}", diaryHandler.Update)
		r.Delete("/{id}", diaryHandler.Delete)
	})

	return r
}
