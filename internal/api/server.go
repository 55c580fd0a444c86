// Package api provides the HTTP API server and handlers for MemoirAI.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Rishi-Dave/memoirAI/internal/store"
	"github.com/Rishi-Dave/memoirAI/internal/validation"
)

const apiVersion = "1.0.0"

// validate checks request DTOs whose rules the schema cannot express.
var validate = validation.New()

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	tools    *Tools
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *store.Store, services *Services, tools *Tools, logger *slog.Logger) *Server {
	s := &Server{
		store:    store,
		services: services,
		tools:    tools,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.setupMiddleware()

	config := huma.DefaultConfig("MemoirAI API", apiVersion)
	config.Transformers = append(config.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, config)

	RegisterErrorHandler()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes registers all operations on the huma API.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerMemoirRoutes()
	s.registerEntryRoutes()
	s.registerToolRoutes()
}
