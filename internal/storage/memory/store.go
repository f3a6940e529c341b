// Package memory provides an in-process implementation of the storage
// interfaces. It backs local runs with STORAGE_BACKEND=memory and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hongminglow/simula-invest-be/internal/models"
	"github.com/hongminglow/simula-invest-be/internal/storage"
)

var (
	_ storage.UserStore       = (*Store)(nil)
	_ storage.SimulationStore = (*Store)(nil)
	_ storage.Pinger          = (*Store)(nil)
)

// Store keeps users and simulations in maps guarded by a single mutex.
type Store struct {
	mu          sync.RWMutex
	now         func() time.Time
	nextUserID  int64
	nextSimID   int64
	users       map[int64]models.User
	simulations map[int64]models.Simulation
}

func New() *Store {
	return &Store{
		now:         time.Now,
		users:       make(map[int64]models.User),
		simulations: make(map[int64]models.Simulation),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.nextUserID++
	now := s.now()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findUser(ctx, func(u models.User) bool { return u.Username == username })
}

func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findUser(ctx, func(u models.User) bool { return u.Email == email })
}

func (s *Store) findUser(ctx context.Context, match func(models.User) bool) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// ListUsers returns every user ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateSimulation(ctx context.Context, sim models.Simulation) (models.Simulation, error) {
	if err := ctx.Err(); err != nil {
		return models.Simulation{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[sim.UserID]; !ok {
		return models.Simulation{}, storage.ErrNotFound
	}
	s.nextSimID++
	now := s.now()
	sim.ID = s.nextSimID
	sim.Valor = copyFloat(sim.Valor)
	sim.CreatedAt = now
	sim.UpdatedAt = now
	s.simulations[sim.ID] = sim
	return cloneSimulation(sim), nil
}

func (s *Store) ListSimulations(ctx context.Context, userID int64) ([]models.Simulation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Simulation, 0)
	for _, sim := range s.simulations {
		if sim.UserID == userID {
			out = append(out, cloneSimulation(sim))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) FindSimulation(ctx context.Context, userID, id int64) (models.Simulation, error) {
	if err := ctx.Err(); err != nil {
		return models.Simulation{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sim, ok := s.simulations[id]
	if !ok || sim.UserID != userID {
		return models.Simulation{}, storage.ErrNotFound
	}
	return cloneSimulation(sim), nil
}

// UpdateSimulation overwrites the mutable fields of the record matching
// (sim.ID, sim.UserID).
func (s *Store) UpdateSimulation(ctx context.Context, sim models.Simulation) (models.Simulation, error) {
	if err := ctx.Err(); err != nil {
		return models.Simulation{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.simulations[sim.ID]
	if !ok || current.UserID != sim.UserID {
		return models.Simulation{}, storage.ErrNotFound
	}
	current.Tipo = sim.Tipo
	current.Nome = sim.Nome
	current.Valor = copyFloat(sim.Valor)
	current.InvestInicial = sim.InvestInicial
	current.InvestMensal = sim.InvestMensal
	current.Meses = sim.Meses
	current.Inflacao = sim.Inflacao
	current.UpdatedAt = s.now()
	s.simulations[sim.ID] = current
	return cloneSimulation(current), nil
}

func (s *Store) DeleteSimulation(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sim, ok := s.simulations[id]
	if !ok || sim.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.simulations, id)
	return nil
}

func cloneSimulation(sim models.Simulation) models.Simulation {
	sim.Valor = copyFloat(sim.Valor)
	return sim
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
