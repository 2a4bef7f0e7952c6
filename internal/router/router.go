package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"professores-api/internal/config"
	"professores-api/internal/handler"
	"professores-api/internal/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Professor *handler.ProfessorHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers, healthCheck func(context.Context) error) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("professores API up and running"))
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if healthCheck != nil {
			if err := healthCheck(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/register", handlers.Auth.Register)
	r.Post("/login", handlers.Auth.Login)

	r.Route("/professores", func(pr chi.Router) {
		pr.Use(authMiddleware.RequireAuth)
		pr.Get("/", handlers.Professor.List)
		pr.Post("/", handlers.Professor.Create)
		pr.Put("/{id}", handlers.Professor.Update)
		pr.Delete("/{id}", handlers.Professor.Delete)
	})

	return r
}
