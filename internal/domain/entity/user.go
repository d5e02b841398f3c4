package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperador   = "operador"
)

// Estados de User.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// IsValidRole informa si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSupervisor || role == RoleOperador
}

// User representa un operador o administrador (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Username     string // único por empresa
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	Capabilities []string // override explícito; vacío = política por defecto del rol
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
