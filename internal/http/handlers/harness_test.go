package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/simula-invest-be/internal/auth"
	"github.com/hongminglow/simula-invest-be/internal/models"
	"github.com/hongminglow/simula-invest-be/internal/storage/memory"
	"github.com/hongminglow/simula-invest-be/internal/validation"
)

const testSecret = "handler-test-secret"

type harness struct {
	store  *faultStore
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
	router chi.Router
}

// newHarness mounts the public auth routes and, behind a header-driven
// stand-in for the auth gate, the protected routes.
func newHarness(t *testing.T) *harness {
	t.Helper()
	logger, _ := test.NewNullLogger()
	h := &harness{
		store:  &faultStore{Store: memory.New()},
		tokens: auth.NewTokenManager(testSecret, "simula-invest", time.Hour),
		hasher: auth.NewPasswordHasher(4),
	}
	v := validation.New()

	r := chi.NewRouter()
	NewHealthHandler(time.Now(), h.store, logger).Register(r)
	NewAuthHandler(h.store, h.hasher, h.tokens, v, logger).Register(r)
	r.Group(func(r chi.Router) {
		r.Use(asUser)
		NewUsersHandler(h.store, logger).Register(r)
		NewSimulationHandler(h.store, v, logger).Register(r)
	})
	h.router = r
	return h
}

// asUser places the id carried in X-Test-User into the request context.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := strconv.ParseInt(r.Header.Get("X-Test-User"), 10, 64); err == nil {
			r = r.WithContext(auth.WithUserID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func (h *harness) do(method, path, body string, userID int64) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set("X-Test-User", strconv.FormatInt(userID, 10))
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) createUser(t *testing.T, username, email, password string) models.User {
	t.Helper()
	hash, err := h.hasher.Hash(password)
	require.NoError(t, err)
	u, err := h.store.Store.CreateUser(context.Background(), models.User{Username: username, Email: email, PasswordHash: hash})
	require.NoError(t, err)
	return u
}

// faultStore wraps the memory store and fails the operations whose error is set.
type faultStore struct {
	*memory.Store
	findErr       error
	createUserErr error
	listUsersErr  error
	simErr        error
	pingErr       error
}

func (s *faultStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	if s.findErr != nil {
		return models.User{}, s.findErr
	}
	return s.Store.FindByUsername(ctx, username)
}

func (s *faultStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if s.findErr != nil {
		return models.User{}, s.findErr
	}
	return s.Store.FindByEmail(ctx, email)
}

func (s *faultStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if s.createUserErr != nil {
		return models.User{}, s.createUserErr
	}
	return s.Store.CreateUser(ctx, user)
}

func (s *faultStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if s.listUsersErr != nil {
		return nil, s.listUsersErr
	}
	return s.Store.ListUsers(ctx)
}

func (s *faultStore) CreateSimulation(ctx context.Context, sim models.Simulation) (models.Simulation, error) {
	if s.simErr != nil {
		return models.Simulation{}, s.simErr
	}
	return s.Store.CreateSimulation(ctx, sim)
}

func (s *faultStore) ListSimulations(ctx context.Context, userID int64) ([]models.Simulation, error) {
	if s.simErr != nil {
		return nil, s.simErr
	}
	return s.Store.ListSimulations(ctx, userID)
}

func (s *faultStore) FindSimulation(ctx context.Context, userID, id int64) (models.Simulation, error) {
	if s.simErr != nil {
		return models.Simulation{}, s.simErr
	}
	return s.Store.FindSimulation(ctx, userID, id)
}

func (s *faultStore) UpdateSimulation(ctx context.Context, sim models.Simulation) (models.Simulation, error) {
	if s.simErr != nil {
		return models.Simulation{}, s.simErr
	}
	return s.Store.UpdateSimulation(ctx, sim)
}

func (s *faultStore) DeleteSimulation(ctx context.Context, userID, id int64) error {
	if s.simErr != nil {
		return s.simErr
	}
	return s.Store.DeleteSimulation(ctx, userID, id)
}

func (s *faultStore) Ping(ctx context.Context) error {
	if s.pingErr != nil {
		return s.pingErr
	}
	return s.Store.Ping(ctx)
}
