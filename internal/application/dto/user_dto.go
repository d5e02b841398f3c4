package dto

import "time"

// CreateOperatorRequest entrada para crear un operador o administrador.
type CreateOperatorRequest struct {
	Username     string   `json:"username" validate:"required,min=3,max=60"`
	Password     string   `json:"password" validate:"required,min=8"`
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Role         string   `json:"role" validate:"required,oneof=admin supervisor operador"`
	Capabilities []string `json:"capabilities"`
}

// UpdateOperatorRequest campos opcionales a modificar.
type UpdateOperatorRequest struct {
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	Password     *string   `json:"password"`
	Role         *string   `json:"role"`
	Status       *string   `json:"status" validate:"omitempty,oneof=active inactive"`
	Capabilities *[]string `json:"capabilities"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Capabilities []string  `json:"capabilities"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login: empresa + usuario + contraseña.
type LoginRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y capacidades efectivas.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
