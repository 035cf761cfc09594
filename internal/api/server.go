// Package api exposes the tracker over a JSON HTTP API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ugc_tracker/internal/service"
)

type Server struct {
	tracker  *service.TrackerService
	validate *Validator
	router   *chi.Mux
	logger   *slog.Logger
}

func NewServer(tracker *service.TrackerService, allowedOrigins []string, logger *slog.Logger) *Server {
	s := &Server{
		tracker:  tracker,
		validate: NewValidator(),
		router:   chi.NewRouter(),
		logger:   logger.With("component", "api"),
	}

	s.setupMiddleware(allowedOrigins)
	s.setupRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware(allowedOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/songs", func(r chi.Router) {
			r.Get("/", s.handleListSongs)
			r.Post("/", s.handleCreateSong)
			r.Get("/{id}", s.handleGetSong)
			r.Delete("/{id}", s.handleDeleteSong)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", s.handleListVideos)
			r.Post("/", s.handleSubmitVideo)
			r.Get("/{id}", s.handleGetVideo)
			r.Post("/{id}/review", s.handleReviewVideo)
		})

		r.Get("/review/queue", s.handleReviewQueue)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", s.handleStats)
			r.Get("/top", s.handleTopVideos)
		})
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "healthy"}, s.logger)
}
