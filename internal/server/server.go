package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/simula-invest-be/internal/auth"
	"github.com/hongminglow/simula-invest-be/internal/config"
	"github.com/hongminglow/simula-invest-be/internal/docs"
	"github.com/hongminglow/simula-invest-be/internal/http/handlers"
	"github.com/hongminglow/simula-invest-be/internal/http/respond"
	"github.com/hongminglow/simula-invest-be/internal/middleware"
	"github.com/hongminglow/simula-invest-be/internal/observability"
	"github.com/hongminglow/simula-invest-be/internal/storage"
	"github.com/hongminglow/simula-invest-be/internal/validation"
)

// Store is everything the HTTP layer needs from persistence.
type Store interface {
	storage.UserStore
	storage.SimulationStore
	storage.Pinger
}

// Deps are the collaborators the server is built from.
type Deps struct {
	Store   Store
	Logger  logrus.FieldLogger
	Metrics *observability.Metrics
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner   *http.Server
	handler http.Handler
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	v := validation.New()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	handlers.NewHealthHandler(time.Now(), deps.Store, logger).Register(r)
	handlers.NewAuthHandler(deps.Store, hasher, tokens, v, logger).Register(r)
	docs.Register(r)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, logger, deps.Metrics))
		handlers.NewUsersHandler(deps.Store, logger).Register(r)
		handlers.NewSimulationHandler(deps.Store, v, logger).Register(r)
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer, handler: r}
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
