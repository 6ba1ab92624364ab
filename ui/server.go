package ui

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"datasense/app"
	"datasense/internal"
)

// Server exposes the dataset pipeline and the question bridge over HTTP
type Server struct {
	router   chi.Router
	datasets *app.DatasetService
	bridge   *app.Bridge
	logger   *internal.Logger
}

// NewServer wires the HTTP surface
func NewServer(datasets *app.DatasetService, bridge *app.Bridge) *Server {
	s := &Server{
		datasets: datasets,
		bridge:   bridge,
		logger:   internal.DefaultLogger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api/datasets", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Route("/{datasetID}", func(r chi.Router) {
			r.Get("/", s.handleProfile)
			r.Get("/summary", s.handleSummary)
			r.Post("/ask", s.handleAsk)
		})
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}
