package dto

import (
	"strings"

	"github.com/hongminglow/simula-invest-be/internal/models"
)

// CreateSimulationRequest is the payload of POST /log-Simulation. Numeric
// fields are pointers so that an explicit zero is told apart from an absent key.
type CreateSimulationRequest struct {
	Tipo          string   `json:"tipo" validate:"required,oneof=acao renda-fixa"`
	Nome          string   `json:"nome" validate:"required"`
	Valor         *float64 `json:"valor" validate:"required_if=Tipo acao"`
	InvestInicial *float64 `json:"invest_inicial" validate:"required,gte=0"`
	InvestMensal  *float64 `json:"invest_mensal" validate:"required,gte=0"`
	Meses         *int     `json:"meses" validate:"required,gte=1,lte=2147483647"`
	Inflacao      *float64 `json:"inflacao" validate:"required"`
}

// Trim strips surrounding whitespace from the text fields so that a blank
// value fails the required rule.
func (r *CreateSimulationRequest) Trim() {
	r.Tipo = strings.TrimSpace(r.Tipo)
	r.Nome = strings.TrimSpace(r.Nome)
}

// Simulation converts a validated request into a record owned by userID.
// The unit price is only kept for stock simulations.
func (r CreateSimulationRequest) Simulation(userID int64) models.Simulation {
	sim := models.Simulation{
		UserID:        userID,
		Tipo:          r.Tipo,
		Nome:          r.Nome,
		InvestInicial: deref(r.InvestInicial),
		InvestMensal:  deref(r.InvestMensal),
		Meses:         deref(r.Meses),
		Inflacao:      deref(r.Inflacao),
	}
	if sim.IsStock() && r.Valor != nil {
		v := *r.Valor
		sim.Valor = &v
	}
	return sim
}

type DeleteSimulationRequest struct {
	SimulationID *int64 `json:"simulationId" validate:"required,gt=0"`
}

// PatchSimulationRequest carries the target id plus any subset of the
// simulation fields. Absent fields keep their stored value.
type PatchSimulationRequest struct {
	SimulationID  *int64   `json:"simulationId" validate:"required,gt=0"`
	Tipo          *string  `json:"tipo"`
	Nome          *string  `json:"nome"`
	Valor         *float64 `json:"valor"`
	InvestInicial *float64 `json:"invest_inicial"`
	InvestMensal  *float64 `json:"invest_mensal"`
	Meses         *int     `json:"meses"`
	Inflacao      *float64 `json:"inflacao"`
}

// Apply merges the supplied fields over current and returns the result in
// create-request form so the same rules can validate it.
func (p PatchSimulationRequest) Apply(current models.Simulation) CreateSimulationRequest {
	merged := CreateSimulationRequest{
		Tipo:          current.Tipo,
		Nome:          current.Nome,
		Valor:         current.Valor,
		InvestInicial: ptr(current.InvestInicial),
		InvestMensal:  ptr(current.InvestMensal),
		Meses:         ptr(current.Meses),
		Inflacao:      ptr(current.Inflacao),
	}
	if p.Tipo != nil {
		merged.Tipo = *p.Tipo
	}
	if p.Nome != nil {
		merged.Nome = *p.Nome
	}
	if p.Valor != nil {
		merged.Valor = p.Valor
	}
	if p.InvestInicial != nil {
		merged.InvestInicial = p.InvestInicial
	}
	if p.InvestMensal != nil {
		merged.InvestMensal = p.InvestMensal
	}
	if p.Meses != nil {
		merged.Meses = p.Meses
	}
	if p.Inflacao != nil {
		merged.Inflacao = p.Inflacao
	}
	merged.Trim()
	return merged
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func ptr[T any](v T) *T {
	return &v
}
