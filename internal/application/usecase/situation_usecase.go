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

// SituationUseCase CRUD de situaciones.
type SituationUseCase struct {
	repo repository.SituationRepository
	pub  publisher
}

// NewSituationUseCase construye el caso de uso.
func NewSituationUseCase(repo repository.SituationRepository, bus ports.EventBus, log *logger.Logger) *SituationUseCase {
	return &SituationUseCase{repo: repo, pub: newPublisher(bus, log)}
}

// Create crea una situación.
func (uc *SituationUseCase) Create(ctx context.Context, companyID string, in dto.SaveSituationRequest) (*dto.SituationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	s := &entity.Situation{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        name,
		Description: in.Description,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionSituations, event.ActionCreated, companyID, s.ID)
	return toSituationResponse(s), nil
}

// GetByID obtiene una situación.
func (uc *SituationUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SituationResponse, error) {
	s, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil || s == nil {
		return nil, err
	}
	return toSituationResponse(s), nil
}

// Update reemplaza los campos editables.
func (uc *SituationUseCase) Update(ctx context.Context, companyID, id string, in dto.SaveSituationRequest) (*dto.SituationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	s, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil || s == nil {
		return nil, err
	}
	s.Name = name
	s.Description = in.Description
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionSituations, event.ActionUpdated, companyID, s.ID)
	return toSituationResponse(s), nil
}

// List lista situaciones.
func (uc *SituationUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.SituationListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SituationResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSituationResponse(s))
	}
	return &dto.SituationListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina una situación.
func (uc *SituationUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.pub.publish(ctx, event.CollectionSituations, event.ActionDeleted, companyID, id)
	return nil
}

func toSituationResponse(s *entity.Situation) *dto.SituationResponse {
	return &dto.SituationResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
