package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/simula-invest-be/internal/models"
	"github.com/hongminglow/simula-invest-be/internal/storage"
)

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		base = base.Add(time.Second)
		return base
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	s.now = steppingClock()
	return s
}

func mustUser(t *testing.T, s *Store, name string) models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.User{Username: name, Email: name + "@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	return u
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	jane := mustUser(t, s, "jane")
	assert.Equal(t, int64(1), jane.ID)
	assert.False(t, jane.CreatedAt.IsZero())

	_, err := s.CreateUser(ctx, models.User{Username: "other", Email: "jane@x.com"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	_, err = s.CreateUser(ctx, models.User{Username: "jane", Email: "other@x.com"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	got, err := s.FindByUsername(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, jane, got)

	got, err = s.FindByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, got.ID)

	_, err = s.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	mustUser(t, s, "bob")
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "jane", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestSimulations_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	jane := mustUser(t, s, "jane")
	bob := mustUser(t, s, "bob")

	price := 35.5
	first, err := s.CreateSimulation(ctx, models.Simulation{UserID: jane.ID, Tipo: models.SimulationStock, Nome: "AAPL", Valor: &price, Meses: 12})
	require.NoError(t, err)
	second, err := s.CreateSimulation(ctx, models.Simulation{UserID: jane.ID, Tipo: models.SimulationFixedIncome, Nome: "CDB", Meses: 6})
	require.NoError(t, err)

	price = 99
	assert.Equal(t, 35.5, *first.Valor, "stored value must not alias the caller's pointer")

	list, err := s.ListSimulations(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	empty, err := s.ListSimulations(ctx, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = s.FindSimulation(ctx, bob.ID, first.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.DeleteSimulation(ctx, bob.ID, first.ID), storage.ErrNotFound)
	require.NoError(t, s.DeleteSimulation(ctx, jane.ID, first.ID))
	assert.ErrorIs(t, s.DeleteSimulation(ctx, jane.ID, first.ID), storage.ErrNotFound)
}

func TestUpdateSimulation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	jane := mustUser(t, s, "jane")
	bob := mustUser(t, s, "bob")

	sim, err := s.CreateSimulation(ctx, models.Simulation{UserID: jane.ID, Tipo: models.SimulationFixedIncome, Nome: "CDB", Meses: 6})
	require.NoError(t, err)

	sim.Nome = "CDB 120%"
	sim.Meses = 24
	updated, err := s.UpdateSimulation(ctx, sim)
	require.NoError(t, err)
	assert.Equal(t, "CDB 120%", updated.Nome)
	assert.Equal(t, 24, updated.Meses)
	assert.Equal(t, sim.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(sim.UpdatedAt))

	sim.UserID = bob.ID
	_, err = s.UpdateSimulation(ctx, sim)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateSimulation_UnknownOwner(t *testing.T) {
	s := newStore(t)
	_, err := s.CreateSimulation(context.Background(), models.Simulation{UserID: 99, Nome: "x"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCancelledContext(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.DeleteSimulation(ctx, 1, 1), context.Canceled)
}
