package dto

import "time"

// StartNavigationRequest inicia la atención de un producto.
type StartNavigationRequest struct {
	ProductID      string `json:"product_id"`
	AttendanceType string `json:"attendance_type"`
	PersonType     string `json:"person_type"`
}

// SelectButtonRequest botón elegido en el paso actual.
type SelectButtonRequest struct {
	ButtonID string `json:"button_id"`
}

// SearchStepRequest texto a buscar en los títulos del producto activo.
type SearchStepRequest struct {
	Query string `json:"query"`
}

// NavigationResponse estado de la atención tras una transición.
type NavigationResponse struct {
	Status         string        `json:"status"` // idle | active
	Outcome        string        `json:"outcome,omitempty"`
	ProductID      string        `json:"product_id,omitempty"`
	ProductName    string        `json:"product_name,omitempty"`
	AttendanceType string        `json:"attendance_type,omitempty"`
	PersonType     string        `json:"person_type,omitempty"`
	CurrentStep    *StepResponse `json:"current_step,omitempty"`
	History        []string      `json:"history"`
	CanGoBack      bool          `json:"can_go_back"`
	StartedAt      *time.Time    `json:"started_at,omitempty"`
}
