package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/session"
)

// Router assembles the HTTP API.
type Router struct {
	authHandler  *AuthHandler
	movieHandler *MovieHandler
	sessions     *session.Manager
	logger       zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	AuthHandler  *AuthHandler
	MovieHandler *MovieHandler
	Sessions     *session.Manager
	Logger       zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		authHandler:  cfg.AuthHandler,
		movieHandler: cfg.MovieHandler,
		sessions:     cfg.Sessions,
		logger:       cfg.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(LoggingMiddleware(rt.logger))
	r.Use(MetricsMiddleware())
	r.Use(SessionMiddleware(rt.sessions))

	r.Get("/health", rt.handleHealth)

	rt.authHandler.RegisterRoutes(r)
	rt.movieHandler.RegisterRoutes(r)

	return r
}

// handleHealth handles health check requests.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
