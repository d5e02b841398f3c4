package entity

import "time"

// Situation situación del cliente registrable durante la atención.
type Situation struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
