package dto

import "time"

// ButtonDTO botón de un paso.
type ButtonDTO struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Order      int     `json:"order"`
	Primary    bool    `json:"primary"`
	NextStepID *string `json:"next_step_id"`
}

// StepTabulationDTO tabulación recomendada en un paso.
type StepTabulationDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// SaveStepRequest entrada para crear o reemplazar un paso.
type SaveStepRequest struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Buttons     []ButtonDTO         `json:"buttons"`
	Tabulations []StepTabulationDTO `json:"tabulations"`
}

// StepResponse salida de un paso; los botones van ordenados para mostrar.
type StepResponse struct {
	ID          string              `json:"id"`
	ProductID   string              `json:"product_id"`
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Buttons     []ButtonDTO         `json:"buttons"`
	Tabulations []StepTabulationDTO `json:"tabulations"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// StepListResponse pasos de un producto.
type StepListResponse struct {
	Items []StepResponse `json:"items"`
}

// ImportStepsRequest importa una familia de archivo al producto.
type ImportStepsRequest struct {
	File string `json:"file"`
	// Bind liga el producto a la familia para re-importar cuando cambie el archivo.
	Bind bool `json:"bind"`
}

// ImportStepsResponse resultado de la importación.
type ImportStepsResponse struct {
	ProductID string `json:"product_id"`
	File      string `json:"file"`
	Imported  int    `json:"imported"`
}
