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

// ChannelUseCase CRUD de canales de contacto.
type ChannelUseCase struct {
	repo repository.ChannelRepository
	pub  publisher
}

// NewChannelUseCase construye el caso de uso.
func NewChannelUseCase(repo repository.ChannelRepository, bus ports.EventBus, log *logger.Logger) *ChannelUseCase {
	return &ChannelUseCase{repo: repo, pub: newPublisher(bus, log)}
}

// Create crea un canal; name y contact son obligatorios.
func (uc *ChannelUseCase) Create(ctx context.Context, companyID string, in dto.SaveChannelRequest) (*dto.ChannelResponse, error) {
	if err := validateChannel(in); err != nil {
		return nil, err
	}
	now := time.Now()
	ch := &entity.Channel{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        strings.TrimSpace(in.Name),
		Contact:     strings.TrimSpace(in.Contact),
		Description: in.Description,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, ch); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionChannels, event.ActionCreated, companyID, ch.ID)
	return toChannelResponse(ch), nil
}

// GetByID obtiene un canal.
func (uc *ChannelUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ChannelResponse, error) {
	ch, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil || ch == nil {
		return nil, err
	}
	return toChannelResponse(ch), nil
}

// Update reemplaza los campos editables.
func (uc *ChannelUseCase) Update(ctx context.Context, companyID, id string, in dto.SaveChannelRequest) (*dto.ChannelResponse, error) {
	if err := validateChannel(in); err != nil {
		return nil, err
	}
	ch, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil || ch == nil {
		return nil, err
	}
	ch.Name = strings.TrimSpace(in.Name)
	ch.Contact = strings.TrimSpace(in.Contact)
	ch.Description = in.Description
	if in.IsActive != nil {
		ch.IsActive = *in.IsActive
	}
	ch.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, ch); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionChannels, event.ActionUpdated, companyID, ch.ID)
	return toChannelResponse(ch), nil
}

// List lista canales.
func (uc *ChannelUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ChannelListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChannelResponse, 0, len(list))
	for _, ch := range list {
		items = append(items, *toChannelResponse(ch))
	}
	return &dto.ChannelListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina un canal.
func (uc *ChannelUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.pub.publish(ctx, event.CollectionChannels, event.ActionDeleted, companyID, id)
	return nil
}

func validateChannel(in dto.SaveChannelRequest) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Contact) == "" {
		return fmt.Errorf("%w: name y contact son obligatorios", domain.ErrInvalidInput)
	}
	return nil
}

func toChannelResponse(ch *entity.Channel) *dto.ChannelResponse {
	return &dto.ChannelResponse{
		ID:          ch.ID,
		Name:        ch.Name,
		Contact:     ch.Contact,
		Description: ch.Description,
		IsActive:    ch.IsActive,
		CreatedAt:   ch.CreatedAt,
		UpdatedAt:   ch.UpdatedAt,
	}
}
