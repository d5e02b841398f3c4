package dto

import "time"

// SaveTabulationRequest entrada para crear o actualizar una tabulación.
type SaveTabulationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"is_active"`
}

// TabulationResponse salida de una tabulación.
type TabulationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TabulationListResponse lista paginada.
type TabulationListResponse struct {
	Items []TabulationResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// SaveSituationRequest entrada para crear o actualizar una situación.
type SaveSituationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// SituationResponse salida de una situación.
type SituationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SituationListResponse lista paginada.
type SituationListResponse struct {
	Items []SituationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// SaveChannelRequest entrada para crear o actualizar un canal.
type SaveChannelRequest struct {
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// ChannelResponse salida de un canal.
type ChannelResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChannelListResponse lista paginada.
type ChannelListResponse struct {
	Items []ChannelResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SaveNoteRequest entrada para crear o actualizar una nota.
type SaveNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse salida de una nota.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteListResponse lista paginada.
type NoteListResponse struct {
	Items []NoteResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
