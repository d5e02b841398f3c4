// Package navigation orquesta la sesión de navegación de cada operador: carga el estado persistido,
// aplica una transición del Navigator y guarda el resultado.
package navigation

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/application/scripts"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/catalog"
	nav "github.com/jhoicas/roteiro-api/internal/domain/navigation"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// Transiciones, usadas como etiqueta de métricas.
const (
	TransitionStart  = "start"
	TransitionSelect = "select"
	TransitionBack   = "back"
	TransitionReset  = "reset"
	TransitionSearch = "search"
)

// SessionUseCase una sesión por operador (companyID, userID).
type SessionUseCase struct {
	catalog  nav.Catalog
	sessions ports.SessionStore
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewSessionUseCase construye el caso de uso. metrics es opcional.
func NewSessionUseCase(catalog nav.Catalog, sessions ports.SessionStore, metrics ports.Metrics, log *logger.Logger) *SessionUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SessionUseCase{catalog: catalog, sessions: sessions, metrics: metrics, log: log.Named("navigation")}
}

// Current devuelve el estado actual sin modificarlo. Si el producto o el paso actual
// desaparecieron la sesión se descarta y se responde Idle.
func (uc *SessionUseCase) Current(ctx context.Context, companyID, userID string) (*dto.NavigationResponse, error) {
	n, err := uc.load(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	return uc.response(n, ""), nil
}

// Start inicia la atención del producto. Si falla la sesión anterior queda intacta.
func (uc *SessionUseCase) Start(ctx context.Context, companyID, userID string, in dto.StartNavigationRequest) (*dto.NavigationResponse, error) {
	if in.AttendanceType != "" || in.PersonType != "" {
		if err := catalog.ValidateSelection(in.AttendanceType, in.PersonType); err != nil {
			return nil, err
		}
	}
	n, err := uc.load(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if err := n.Start(ctx, in.ProductID, nav.Selection{AttendanceType: in.AttendanceType, PersonType: in.PersonType}); err != nil {
		uc.observe(TransitionStart, err)
		return nil, err
	}
	if in.AttendanceType != "" {
		if p := n.Product(); !p.Supports(in.AttendanceType, in.PersonType) {
			uc.log.Debug().Str("product_id", p.ID).Str("attendance_type", in.AttendanceType).Str("person_type", in.PersonType).
				Msg("producto iniciado fuera de su combinación de tipos")
		}
	}
	if err := uc.save(ctx, companyID, userID, n); err != nil {
		return nil, err
	}
	uc.observe(TransitionStart, nil)
	return uc.response(n, nav.Moved), nil
}

// Select aplica el botón buttonID del paso actual. Un botón sin destino termina la atención.
// Un destino inexistente deja la sesión como estaba y devuelve domain.ErrDanglingReference.
func (uc *SessionUseCase) Select(ctx context.Context, companyID, userID string, in dto.SelectButtonRequest) (*dto.NavigationResponse, error) {
	n, err := uc.loadActive(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	productID := n.Product().ID
	from := n.Current().ID
	outcome, err := n.SelectButton(ctx, in.ButtonID)
	if err != nil {
		if errors.Is(err, domain.ErrDanglingReference) {
			uc.metrics.DanglingReference(productID)
			uc.log.Warn().Str("company_id", companyID).Str("product_id", productID).Str("step_id", from).
				Str("button_id", in.ButtonID).Msg("botón con destino inexistente")
		}
		uc.observe(TransitionSelect, err)
		return nil, err
	}
	if err := uc.save(ctx, companyID, userID, n); err != nil {
		return nil, err
	}
	uc.metrics.NavigationTransition(TransitionSelect, string(outcome))
	return uc.response(n, outcome), nil
}

// Back vuelve al paso anterior; con un solo paso en el historial no cambia nada.
func (uc *SessionUseCase) Back(ctx context.Context, companyID, userID string) (*dto.NavigationResponse, error) {
	n, err := uc.loadActive(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	moved, err := n.Back(ctx)
	if err != nil {
		uc.observe(TransitionBack, err)
		return nil, err
	}
	if moved {
		if err := uc.save(ctx, companyID, userID, n); err != nil {
			return nil, err
		}
		uc.metrics.NavigationTransition(TransitionBack, "moved")
	} else {
		uc.metrics.NavigationTransition(TransitionBack, "noop")
	}
	return uc.response(n, ""), nil
}

// Reset descarta la sesión del operador.
func (uc *SessionUseCase) Reset(ctx context.Context, companyID, userID string) (*dto.NavigationResponse, error) {
	if err := uc.sessions.Delete(ctx, companyID, userID); err != nil {
		return nil, err
	}
	uc.metrics.NavigationTransition(TransitionReset, "ok")
	return uc.response(nav.New(uc.catalog, companyID), ""), nil
}

// Search salta al primer paso cuyo título contiene query.
func (uc *SessionUseCase) Search(ctx context.Context, companyID, userID string, in dto.SearchStepRequest) (*dto.NavigationResponse, error) {
	n, err := uc.loadActive(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := n.Search(ctx, in.Query); err != nil {
		uc.observe(TransitionSearch, err)
		return nil, err
	}
	if err := uc.save(ctx, companyID, userID, n); err != nil {
		return nil, err
	}
	uc.metrics.NavigationTransition(TransitionSearch, string(nav.Moved))
	return uc.response(n, nav.Moved), nil
}

func (uc *SessionUseCase) load(ctx context.Context, companyID, userID string) (*nav.Navigator, error) {
	n := nav.New(uc.catalog, companyID)
	state, err := uc.sessions.Get(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return n, nil
	}
	if err := n.Restore(ctx, *state); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrStepNotFound) {
			uc.log.Warn().Err(err).Str("company_id", companyID).Str("user_id", userID).Msg("sesión descartada: el roteiro cambió")
			if derr := uc.sessions.Delete(ctx, companyID, userID); derr != nil {
				return nil, derr
			}
			return nav.New(uc.catalog, companyID), nil
		}
		return nil, err
	}
	return n, nil
}

func (uc *SessionUseCase) loadActive(ctx context.Context, companyID, userID string) (*nav.Navigator, error) {
	n, err := uc.load(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if n.Status() != nav.Active {
		return nil, domain.ErrNoActiveSession
	}
	return n, nil
}

func (uc *SessionUseCase) save(ctx context.Context, companyID, userID string, n *nav.Navigator) error {
	if n.Status() == nav.Idle {
		return uc.sessions.Delete(ctx, companyID, userID)
	}
	return uc.sessions.Save(ctx, companyID, userID, n.State())
}

func (uc *SessionUseCase) observe(transition string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDanglingReference):
		outcome = "dangling"
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrStepNotFound):
		outcome = "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		outcome = "invalid"
	default:
		outcome = "error"
	}
	uc.metrics.NavigationTransition(transition, outcome)
}

func (uc *SessionUseCase) response(n *nav.Navigator, outcome nav.Outcome) *dto.NavigationResponse {
	history := n.History()
	resp := &dto.NavigationResponse{
		Status:    string(n.Status()),
		Outcome:   string(outcome),
		History:   history,
		CanGoBack: len(history) > 1,
	}
	if n.Status() == nav.Idle {
		return resp
	}
	state := n.State()
	p := n.Product()
	resp.ProductID = p.ID
	resp.ProductName = p.Name
	resp.AttendanceType = state.AttendanceType
	resp.PersonType = state.PersonType
	resp.CurrentStep = scripts.ToStepResponse(n.Current())
	if !state.StartedAt.IsZero() {
		started := state.StartedAt.In(time.UTC)
		resp.StartedAt = &started
	}
	return resp
}
