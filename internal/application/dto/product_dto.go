package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=200"`
	Category        string   `json:"category"`
	ScriptID        string   `json:"script_id"`
	ScriptFile      string   `json:"script_file"`
	AttendanceTypes []string `json:"attendance_types"`
	PersonTypes     []string `json:"person_types"`
	IsActive        *bool    `json:"is_active"`
}

// UpdateProductRequest campos opcionales a modificar.
type UpdateProductRequest struct {
	Name            *string   `json:"name"`
	Category        *string   `json:"category"`
	ScriptID        *string   `json:"script_id"`
	ScriptFile      *string   `json:"script_file"`
	AttendanceTypes *[]string `json:"attendance_types"`
	PersonTypes     *[]string `json:"person_types"`
	IsActive        *bool     `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	ScriptID        string    `json:"script_id"`
	ScriptFile      string    `json:"script_file,omitempty"`
	AttendanceTypes []string  `json:"attendance_types"`
	PersonTypes     []string  `json:"person_types"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
