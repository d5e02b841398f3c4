package stepfiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

var _ ports.StepFileSource = (*Loader)(nil)

// stepJSON forma de cada paso dentro del archivo: {"<stepId>": {title, content, buttons, tabulations}}.
type stepJSON struct {
	Title       string                  `json:"title"`
	Content     string                  `json:"content"`
	Buttons     []entity.Button         `json:"buttons"`
	Tabulations []entity.StepTabulation `json:"tabulations"`
}

// Loader lee las familias permitidas desde un directorio.
type Loader struct {
	dir string
}

// NewLoader construye el loader sobre dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir directorio de los archivos.
func (l *Loader) Dir() string { return l.dir }

// Load lee name y devuelve los pasos en el orden del archivo.
func (l *Loader) Load(name string) ([]entity.ScriptStep, error) {
	if !entity.IsAllowedStepFile(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrFileNotAllowed, name)
	}
	raw, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	steps, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return steps, nil
}

// Parse decodifica el objeto de pasos conservando el orden de las claves.
// Un botón sin nextStepId (o con cadena vacía) termina el roteiro.
func Parse(raw []byte) ([]entity.ScriptStep, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: se esperaba un objeto de pasos", domain.ErrInvalidInput)
	}

	steps := make([]entity.ScriptStep, 0)
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		id, _ := tok.(string)
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: paso sin id", domain.ErrInvalidInput)
		}
		var s stepJSON
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: paso %s: %v", domain.ErrInvalidInput, id, err)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: paso %s repetido", domain.ErrInvalidInput, id)
		}
		seen[id] = true

		for i := range s.Buttons {
			if b := s.Buttons[i].NextStepID; b != nil && strings.TrimSpace(*b) == "" {
				s.Buttons[i].NextStepID = nil
			}
		}
		steps = append(steps, entity.ScriptStep{
			ID:          id,
			Title:       s.Title,
			Content:     s.Content,
			Buttons:     s.Buttons,
			Tabulations: s.Tabulations,
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return steps, nil
}
