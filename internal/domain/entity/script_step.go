package entity

import (
	"sort"
	"time"
)

// Button opción mostrada al operador; NextStepID nil significa fin del roteiro (volver al inicio).
type Button struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Order      int     `json:"order"`
	Primary    bool    `json:"primary"`
	NextStepID *string `json:"nextStepId"`
}

// ScriptStep nodo del roteiro: título, contenido enriquecido (HTML), botones y tabulaciones sugeridas.
type ScriptStep struct {
	ID          string
	CompanyID   string
	ProductID   string
	Title       string
	Content     string
	Buttons     []Button
	Tabulations []StepTabulation
	UpdatedAt   time.Time
}

// SortedButtons devuelve una copia de los botones ordenada por Order; empates conservan la posición original.
func (s *ScriptStep) SortedButtons() []Button {
	out := make([]Button, len(s.Buttons))
	copy(out, s.Buttons)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Button busca un botón por ID.
func (s *ScriptStep) Button(id string) (Button, bool) {
	for _, b := range s.Buttons {
		if b.ID == id {
			return b, true
		}
	}
	return Button{}, false
}
