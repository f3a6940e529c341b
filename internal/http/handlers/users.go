package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/simula-invest-be/internal/apperror"
	"github.com/hongminglow/simula-invest-be/internal/http/respond"
	"github.com/hongminglow/simula-invest-be/internal/storage"
)

// UsersHandler lists registered accounts.
type UsersHandler struct {
	users  storage.UserStore
	logger logrus.FieldLogger
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(users storage.UserStore, logger logrus.FieldLogger) *UsersHandler {
	return &UsersHandler{users: users, logger: logger}
}

// Register expects r to already sit behind the auth gate.
func (h *UsersHandler) Register(r chi.Router) {
	r.Get("/users", h.handleList)
}

func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, apperror.NewInternal("Error fetching users", err))
		return
	}
	if len(users) == 0 {
		respond.Error(w, r, h.logger, apperror.NewNotFound("No users found", nil))
		return
	}
	respond.JSON(w, http.StatusOK, users)
}
