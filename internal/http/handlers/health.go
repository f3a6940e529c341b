package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/simula-invest-be/internal/http/respond"
	"github.com/hongminglow/simula-invest-be/internal/storage"
)

const pingTimeout = 2 * time.Second

// HealthHandler returns uptime and store reachability.
type HealthHandler struct {
	startedAt time.Time
	store     storage.Pinger
	logger    logrus.FieldLogger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store storage.Pinger, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store, logger: logger}
}

// Register wires the handler into the router.
func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Get("/health", h.handle)
}

func (h *HealthHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusOK, "Hello World!")
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	code, status, database := http.StatusOK, "ok", "ok"
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			h.logger.WithError(err).Warn("health: store ping failed")
			code, status, database = http.StatusServiceUnavailable, "degraded", "unavailable"
		}
	}
	respond.JSON(w, code, map[string]string{
		"status":   status,
		"uptime":   time.Since(h.startedAt).Truncate(time.Second).String(),
		"database": database,
	})
}
