package models

import "time"

// Simulation types accepted by the tipo column.
const (
	SimulationStock       = "acao"
	SimulationFixedIncome = "renda-fixa"
)

// Simulation is an investment projection owned by a single user.
type Simulation struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Tipo          string    `json:"tipo"`
	Nome          string    `json:"nome"`
	Valor         *float64  `json:"valor"`
	InvestInicial float64   `json:"invest_inicial"`
	InvestMensal  float64   `json:"invest_mensal"`
	Meses         int       `json:"meses"`
	Inflacao      float64   `json:"inflacao"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsStock reports whether the simulation tracks a priced asset.
func (s Simulation) IsStock() bool {
	return s.Tipo == SimulationStock
}
