package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/simula-invest-be/internal/models"
)

// ErrNotFound indicates a record does not exist or is not owned by the caller.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures credential persistence needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// SimulationStore persists simulations. Every lookup and mutation is scoped
// by the owning user id; a record owned by someone else yields ErrNotFound.
type SimulationStore interface {
	CreateSimulation(ctx context.Context, sim models.Simulation) (models.Simulation, error)
	// ListSimulations returns the owner's records, newest first.
	ListSimulations(ctx context.Context, userID int64) ([]models.Simulation, error)
	FindSimulation(ctx context.Context, userID, id int64) (models.Simulation, error)
	UpdateSimulation(ctx context.Context, sim models.Simulation) (models.Simulation, error)
	DeleteSimulation(ctx context.Context, userID, id int64) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
