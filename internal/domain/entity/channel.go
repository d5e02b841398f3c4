package entity

import "time"

// Channel canal de contacto (teléfono, WhatsApp, e-mail) informado al cliente.
type Channel struct {
	ID          string
	CompanyID   string
	Name        string
	Contact     string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
