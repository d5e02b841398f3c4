package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// TabulationUseCase CRUD de tabulaciones (motivos de cierre).
type TabulationUseCase struct {
	repo repository.TabulationRepository
	pub  publisher
}

// NewTabulationUseCase construye el caso de uso.
func NewTabulationUseCase(repo repository.TabulationRepository, bus ports.EventBus, log *logger.Logger) *TabulationUseCase {
	return &TabulationUseCase{repo: repo, pub: newPublisher(bus, log)}
}

// Create crea una tabulación; name es obligatorio.
func (uc *TabulationUseCase) Create(ctx context.Context, companyID string, in dto.SaveTabulationRequest) (*dto.TabulationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	t := &entity.Tabulation{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        name,
		Description: in.Description,
		Color:       in.Color,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionTabulations, event.ActionCreated, companyID, t.ID)
	return toTabulationResponse(t), nil
}

// GetByID obtiene una tabulación.
func (uc *TabulationUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.TabulationResponse, error) {
	t, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil || t == nil {
		return nil, err
	}
	return toTabulationResponse(t), nil
}

// Update reemplaza los campos editables. Devuelve (nil, nil) si no existe.
func (uc *TabulationUseCase) Update(ctx context.Context, companyID, id string, in dto.SaveTabulationRequest) (*dto.TabulationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	t, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil || t == nil {
		return nil, err
	}
	t.Name = name
	t.Description = in.Description
	t.Color = in.Color
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionTabulations, event.ActionUpdated, companyID, t.ID)
	return toTabulationResponse(t), nil
}

// List lista tabulaciones de la empresa.
func (uc *TabulationUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.TabulationListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TabulationResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTabulationResponse(t))
	}
	return &dto.TabulationListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina una tabulación. Las copias embebidas en pasos no se tocan.
func (uc *TabulationUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.pub.publish(ctx, event.CollectionTabulations, event.ActionDeleted, companyID, id)
	return nil
}

func toTabulationResponse(t *entity.Tabulation) *dto.TabulationResponse {
	return &dto.TabulationResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Color:       t.Color,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
