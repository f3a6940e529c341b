package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/simula-invest-be/internal/apperror"
	"github.com/hongminglow/simula-invest-be/internal/auth"
	"github.com/hongminglow/simula-invest-be/internal/http/respond"
	"github.com/hongminglow/simula-invest-be/internal/models"
	"github.com/hongminglow/simula-invest-be/internal/models/dto"
	"github.com/hongminglow/simula-invest-be/internal/storage"
	"github.com/hongminglow/simula-invest-be/internal/validation"
)

// TokenIssuer signs a bearer token for an authenticated user.
type TokenIssuer interface {
	Generate(user models.User) (string, error)
}

// AuthHandler owns the register and login endpoints.
type AuthHandler struct {
	users     storage.UserStore
	hasher    *auth.PasswordHasher
	tokens    TokenIssuer
	validator *validation.Validator
	logger    logrus.FieldLogger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, hasher *auth.PasswordHasher, tokens TokenIssuer, v *validation.Validator, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{users: users, hasher: hasher, tokens: tokens, validator: v, logger: logger}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	res, err := h.validator.Check(req)
	if err != nil {
		respond.Error(w, r, h.logger, apperror.NewInternal("Error saving user", err))
		return
	}
	if !res.Valid() {
		respond.Error(w, r, h.logger, apperror.NewBadRequest("username, email and password are required"))
		return
	}

	if err := h.ensureAvailable(r, req.Username, req.Email); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respond.Error(w, r, h.logger, apperror.NewInternal("Error saving user", err))
		return
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	created, err := h.users.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, r, h.logger, apperror.NewConflict("Username or email already exists", err))
			return
		}
		respond.Error(w, r, h.logger, apperror.NewInternal("Error saving user", err))
		return
	}

	h.logger.WithField("user_id", created.ID).Info("user registered")
	respond.Message(w, http.StatusCreated, "User registered successfully")
}

// ensureAvailable checks email first and only then username.
func (h *AuthHandler) ensureAvailable(r *http.Request, username, email string) error {
	lookups := []func() (models.User, error){
		func() (models.User, error) { return h.users.FindByEmail(r.Context(), email) },
		func() (models.User, error) { return h.users.FindByUsername(r.Context(), username) },
	}
	for _, find := range lookups {
		_, err := find()
		switch {
		case err == nil:
			return apperror.NewConflict("Username or email already exists", nil)
		case errors.Is(err, storage.ErrNotFound):
		default:
			return apperror.NewInternal("Error saving user", err)
		}
	}
	return nil
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	res, err := h.validator.Check(req)
	if err != nil {
		respond.Error(w, r, h.logger, apperror.NewInternal("Error logging in user", err))
		return
	}
	if !res.Valid() {
		respond.Error(w, r, h.logger, apperror.NewBadRequest("username, email and password are required"))
		return
	}
	// Independent of the rule check above.
	if (req.Email == "" && req.Username == "") || req.Password == "" {
		respond.Error(w, r, h.logger, apperror.NewBadRequest("Email and password are required"))
		return
	}

	user, err := h.users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, r, h.logger, apperror.NewNotFound("User not found", err))
			return
		}
		respond.Error(w, r, h.logger, apperror.NewInternal("Error logging in user", err))
		return
	}
	if req.Email != "" && req.Email != user.Email {
		respond.Error(w, r, h.logger, apperror.NewUnauthorized("Invalid credentials"))
		return
	}

	ok, err := h.hasher.Compare(user.PasswordHash, req.Password)
	if err != nil {
		respond.Error(w, r, h.logger, apperror.NewInternal("Error logging in user", err))
		return
	}
	if !ok {
		respond.Error(w, r, h.logger, apperror.NewUnauthorized("Invalid credentials"))
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respond.Error(w, r, h.logger, apperror.NewInternal("Error logging in user", err))
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Message: "Login successful", Token: token})
}
