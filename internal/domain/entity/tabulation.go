package entity

import "time"

// Tabulation motivo de cierre sugerido al operador; puramente descriptivo.
type Tabulation struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Color       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StepTabulation copia embebida de una tabulación recomendada en un paso del roteiro.
type StepTabulation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}
