package dto

import "time"

// MigrationItemError fallo de un registro individual.
type MigrationItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// MigrationEntityReport resultado por tipo de entidad.
type MigrationEntityReport struct {
	Entity   string               `json:"entity"`
	Total    int                  `json:"total"`
	Migrated int                  `json:"migrated"`
	Errors   []MigrationItemError `json:"errors"`
	Error    string               `json:"error,omitempty"`
}

// MigrationReport resultado completo de la migración local → remoto.
type MigrationReport struct {
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt time.Time               `json:"finished_at"`
	Entities   []MigrationEntityReport `json:"entities"`
}
