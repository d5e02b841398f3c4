package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// ModuleService verifica y modifica qué módulos tiene activos una empresa.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	companyRepo repository.CompanyRepository
	pub         publisher
	now         func() time.Time
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository, bus ports.EventBus, log *logger.Logger) *ModuleService {
	return &ModuleService{companyRepo: companyRepo, pub: newPublisher(bus, log), now: time.Now}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Devuelve false (sin error) si la empresa no tiene el módulo contratado.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
}

// List devuelve el estado de todos los módulos conocidos; los no registrados salen inactivos.
func (s *ModuleService) List(ctx context.Context, companyID string) ([]dto.ModuleResponse, error) {
	stored, err := s.companyRepo.ListModules(ctx, companyID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*entity.CompanyModule, len(stored))
	for _, m := range stored {
		byName[m.ModuleName] = m
	}
	now := s.now()
	out := make([]dto.ModuleResponse, 0, len(entity.Modules))
	for _, name := range entity.Modules {
		r := dto.ModuleResponse{Name: name}
		if m, ok := byName[name]; ok {
			r.IsActive = m.Active(now)
			r.ExpiresAt = m.ExpiresAt
		}
		out = append(out, r)
	}
	return out, nil
}

// Set activa o desactiva un módulo. Nombre desconocido → ErrInvalidInput.
func (s *ModuleService) Set(ctx context.Context, companyID, name string, in dto.SetModuleRequest) (*dto.ModuleResponse, error) {
	if !entity.IsKnownModule(name) {
		return nil, fmt.Errorf("%w: módulo %q desconocido", domain.ErrInvalidInput, name)
	}
	now := s.now()
	m := &entity.CompanyModule{
		CompanyID:   companyID,
		ModuleName:  name,
		IsActive:    in.IsActive,
		ActivatedAt: now,
		ExpiresAt:   in.ExpiresAt,
		UpdatedAt:   now,
	}
	if err := s.companyRepo.SetModule(ctx, m); err != nil {
		return nil, err
	}
	s.pub.publish(ctx, event.CollectionSettings, event.ActionUpdated, companyID, name)
	return &dto.ModuleResponse{Name: name, IsActive: m.Active(now), ExpiresAt: m.ExpiresAt}, nil
}
