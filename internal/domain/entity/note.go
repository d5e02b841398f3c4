package entity

import "time"

// Note anotación privada de un operador.
type Note struct {
	ID        string
	CompanyID string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
