package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/simula-invest-be/internal/models"
	"github.com/hongminglow/simula-invest-be/internal/storage"
)

const simulationColumns = `id, user_id, tipo::text, nome, valor, invest_inicial, invest_mensal, meses, inflacao, created_at, updated_at`

// CreateSimulation inserts a simulation for sim.UserID.
func (s *Store) CreateSimulation(ctx context.Context, sim models.Simulation) (models.Simulation, error) {
	const query = `
		INSERT INTO simulacao (user_id, tipo, nome, valor, invest_inicial, invest_mensal, meses, inflacao)
		VALUES ($1, $2::simulacao_tipo, $3, $4, $5, $6, $7, $8)
		RETURNING ` + simulationColumns
	row := s.pool.QueryRow(ctx, query,
		sim.UserID, sim.Tipo, sim.Nome, sim.Valor, sim.InvestInicial, sim.InvestMensal, sim.Meses, sim.Inflacao)
	created, err := scanSimulation(row)
	if err != nil {
		if isPgCode(err, foreignKeyViolation) {
			return models.Simulation{}, fmt.Errorf("insert simulation: owner %d: %w", sim.UserID, storage.ErrNotFound)
		}
		return models.Simulation{}, fmt.Errorf("insert simulation: %w", err)
	}
	return created, nil
}

// ListSimulations returns the owner's simulations, newest first.
func (s *Store) ListSimulations(ctx context.Context, userID int64) ([]models.Simulation, error) {
	const query = `
		SELECT ` + simulationColumns + `
		FROM simulacao
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	sims, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Simulation, error) {
		return scanSimulation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	return sims, nil
}

// FindSimulation fetches the simulation matching both id and owner.
func (s *Store) FindSimulation(ctx context.Context, userID, id int64) (models.Simulation, error) {
	const query = `SELECT ` + simulationColumns + ` FROM simulacao WHERE id = $1 AND user_id = $2`
	sim, err := scanSimulation(s.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Simulation{}, err
		}
		return models.Simulation{}, fmt.Errorf("find simulation: %w", err)
	}
	return sim, nil
}

// UpdateSimulation rewrites the mutable columns of the row matching
// (sim.ID, sim.UserID).
func (s *Store) UpdateSimulation(ctx context.Context, sim models.Simulation) (models.Simulation, error) {
	const query = `
		UPDATE simulacao
		SET tipo = $3::simulacao_tipo,
			nome = $4,
			valor = $5,
			invest_inicial = $6,
			invest_mensal = $7,
			meses = $8,
			inflacao = $9,
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + simulationColumns
	row := s.pool.QueryRow(ctx, query,
		sim.ID, sim.UserID, sim.Tipo, sim.Nome, sim.Valor, sim.InvestInicial, sim.InvestMensal, sim.Meses, sim.Inflacao)
	updated, err := scanSimulation(row)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Simulation{}, err
		}
		return models.Simulation{}, fmt.Errorf("update simulation: %w", err)
	}
	return updated, nil
}

// DeleteSimulation removes the row matching (id, owner). Zero affected rows
// is reported as storage.ErrNotFound.
func (s *Store) DeleteSimulation(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM simulacao WHERE id = $1 AND user_id = $2`
	tag, err := s.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete simulation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanSimulation(row pgx.Row) (models.Simulation, error) {
	var sim models.Simulation
	err := row.Scan(
		&sim.ID, &sim.UserID, &sim.Tipo, &sim.Nome, &sim.Valor,
		&sim.InvestInicial, &sim.InvestMensal, &sim.Meses, &sim.Inflacao,
		&sim.CreatedAt, &sim.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Simulation{}, storage.ErrNotFound
		}
		return models.Simulation{}, err
	}
	return sim, nil
}
