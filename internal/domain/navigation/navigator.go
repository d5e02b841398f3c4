// Package navigation implementa el recorrido de un operador por el roteiro de un producto:
// paso actual, historial, avance por botones, retroceso, reinicio y salto por búsqueda.
//
// Un Navigator pertenece a una sola sesión y no es seguro para uso concurrente;
// el caso de uso lo reconstruye por petición a partir de un State persistido.
package navigation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/textnorm"
)

// Catalog puerto de lectura de productos y pasos. Los métodos devuelven (nil, nil) si no existe.
type Catalog interface {
	Product(ctx context.Context, companyID, productID string) (*entity.Product, error)
	Step(ctx context.Context, productID, stepID string) (*entity.ScriptStep, error)
	Steps(ctx context.Context, productID string) ([]*entity.ScriptStep, error)
}

// Status estado de la máquina.
type Status string

const (
	Idle   Status = "idle"
	Active Status = "active"
)

// Outcome resultado de seleccionar un botón.
type Outcome string

const (
	// Moved el paso destino pasó a ser el actual.
	Moved Outcome = "moved"
	// Ended el botón terminaba el roteiro; la sesión volvió a Idle.
	Ended Outcome = "ended"
)

// Selection tipos elegidos por el operador al iniciar la atención (opcionales).
type Selection struct {
	AttendanceType string
	PersonType     string
}

// State instantánea serializable de la sesión. El paso actual es el último del historial.
type State struct {
	ProductID      string    `json:"product_id,omitempty"`
	History        []string  `json:"history,omitempty"`
	AttendanceType string    `json:"attendance_type,omitempty"`
	PersonType     string    `json:"person_type,omitempty"`
	StartedAt      time.Time `json:"started_at,omitempty"`
}

// Active informa si el estado representa una atención en curso.
func (s State) Active() bool {
	return s.ProductID != "" && len(s.History) > 0
}

// Navigator máquina de estados Idle/Active sobre un Catalog.
type Navigator struct {
	catalog   Catalog
	companyID string
	now       func() time.Time

	state   State
	product *entity.Product
	current *entity.ScriptStep
}

// New construye un Navigator en Idle para el tenant companyID.
func New(catalog Catalog, companyID string) *Navigator {
	return &Navigator{catalog: catalog, companyID: companyID, now: time.Now}
}

// Status devuelve Idle o Active.
func (n *Navigator) Status() Status {
	if n.current == nil {
		return Idle
	}
	return Active
}

// Current paso actual (nil en Idle).
func (n *Navigator) Current() *entity.ScriptStep { return n.current }

// Product producto activo (nil en Idle).
func (n *Navigator) Product() *entity.Product { return n.product }

// History copia del historial de IDs visitados; el último es el actual.
func (n *Navigator) History() []string {
	out := make([]string, len(n.state.History))
	copy(out, n.state.History)
	return out
}

// State copia del estado para persistir.
func (n *Navigator) State() State {
	s := n.state
	s.History = n.History()
	return s
}

// Restore reconstruye la sesión desde un State persistido. Si el producto o el paso actual ya no
// existen la sesión queda en Idle y se devuelve el error de no encontrado.
func (n *Navigator) Restore(ctx context.Context, s State) error {
	n.Reset()
	if !s.Active() {
		return nil
	}
	product, err := n.loadProduct(ctx, s.ProductID)
	if err != nil {
		return err
	}
	top := s.History[len(s.History)-1]
	step, err := n.loadStep(ctx, product.ID, top)
	if err != nil {
		return err
	}
	n.product = product
	n.current = step
	n.state = s
	n.state.History = append([]string(nil), s.History...)
	return nil
}

// Start inicia la atención de un producto en su paso de entrada.
// Ante cualquier fallo el estado anterior se conserva.
func (n *Navigator) Start(ctx context.Context, productID string, sel Selection) error {
	product, err := n.loadProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return fmt.Errorf("%w: producto %s inactivo", domain.ErrProductNotFound, productID)
	}
	if product.ScriptID == "" {
		return fmt.Errorf("%w: producto %s sin paso inicial", domain.ErrStepNotFound, productID)
	}
	entry, err := n.loadStep(ctx, product.ID, product.ScriptID)
	if err != nil {
		return err
	}
	n.product = product
	n.current = entry
	n.state = State{
		ProductID:      product.ID,
		History:        []string{entry.ID},
		AttendanceType: sel.AttendanceType,
		PersonType:     sel.PersonType,
		StartedAt:      n.now(),
	}
	return nil
}

// Select avanza al paso nextStepID. nil equivale a Reset (fin del roteiro) en cualquier estado.
// Si el destino no existe el estado no cambia y se devuelve ErrDanglingReference.
func (n *Navigator) Select(ctx context.Context, nextStepID *string) (Outcome, error) {
	if nextStepID == nil {
		n.Reset()
		return Ended, nil
	}
	if n.current == nil {
		return "", domain.ErrNoActiveSession
	}
	step, err := n.catalog.Step(ctx, n.product.ID, *nextStepID)
	if err != nil {
		return "", err
	}
	if step == nil {
		return "", fmt.Errorf("%w: %s → %s (%w)", domain.ErrDanglingReference, n.current.ID, *nextStepID, domain.ErrStepNotFound)
	}
	n.push(step)
	return Moved, nil
}

// SelectButton resuelve un botón del paso actual y aplica Select con su destino.
func (n *Navigator) SelectButton(ctx context.Context, buttonID string) (Outcome, error) {
	if n.current == nil {
		return "", domain.ErrNoActiveSession
	}
	b, ok := n.current.Button(buttonID)
	if !ok {
		return "", fmt.Errorf("%w: botón %q no pertenece al paso %s", domain.ErrInvalidInput, buttonID, n.current.ID)
	}
	return n.Select(ctx, b.NextStepID)
}

// Back vuelve al paso anterior. Con historial de un solo paso no hace nada y devuelve false.
func (n *Navigator) Back(ctx context.Context) (bool, error) {
	if n.current == nil || len(n.state.History) <= 1 {
		return false, nil
	}
	prevID := n.state.History[len(n.state.History)-2]
	step, err := n.loadStep(ctx, n.product.ID, prevID)
	if err != nil {
		return false, err
	}
	n.state.History = n.state.History[:len(n.state.History)-1]
	n.current = step
	return true, nil
}

// Reset descarta producto, paso actual e historial; vuelve a Idle.
func (n *Navigator) Reset() {
	n.product = nil
	n.current = nil
	n.state = State{}
}

// Search salta al primer paso del producto activo cuyo título contiene query
// (sin distinguir mayúsculas ni acentos). El salto agrega una sola entrada al historial;
// si el paso encontrado ya es el actual no se duplica. Sin coincidencia, o con query vacía,
// el estado no cambia y se devuelve ErrStepNotFound.
func (n *Navigator) Search(ctx context.Context, query string) (*entity.ScriptStep, error) {
	if n.current == nil {
		return nil, domain.ErrNoActiveSession
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("%w: búsqueda vacía", domain.ErrStepNotFound)
	}
	steps, err := n.catalog.Steps(ctx, n.product.ID)
	if err != nil {
		return nil, err
	}
	for _, s := range steps {
		if s != nil && textnorm.Contains(s.Title, q) {
			if s.ID != n.current.ID {
				n.push(s)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: ningún título contiene %q", domain.ErrStepNotFound, q)
}

func (n *Navigator) push(step *entity.ScriptStep) {
	n.state.History = append(n.state.History, step.ID)
	n.current = step
}

func (n *Navigator) loadProduct(ctx context.Context, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.ErrProductNotFound
	}
	p, err := n.catalog.Product(ctx, n.companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return p, nil
}

func (n *Navigator) loadStep(ctx context.Context, productID, stepID string) (*entity.ScriptStep, error) {
	s, err := n.catalog.Step(ctx, productID, stepID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrStepNotFound, productID, stepID)
	}
	return s, nil
}
