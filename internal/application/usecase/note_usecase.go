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

// NoteUseCase notas personales del operador. Una nota solo es visible para su autor;
// para cualquier otro usuario se comporta como inexistente.
type NoteUseCase struct {
	repo repository.NoteRepository
	pub  publisher
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(repo repository.NoteRepository, bus ports.EventBus, log *logger.Logger) *NoteUseCase {
	return &NoteUseCase{repo: repo, pub: newPublisher(bus, log)}
}

// Create crea una nota del usuario; title es obligatorio.
func (uc *NoteUseCase) Create(ctx context.Context, companyID, userID string, in dto.SaveNoteRequest) (*dto.NoteResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	n := &entity.Note{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		Title:     title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionNotes, event.ActionCreated, companyID, n.ID)
	return toNoteResponse(n), nil
}

// GetByID obtiene una nota propia. (nil, nil) si no existe o es de otro usuario.
func (uc *NoteUseCase) GetByID(ctx context.Context, companyID, userID, id string) (*dto.NoteResponse, error) {
	n, err := uc.owned(ctx, companyID, userID, id)
	if err != nil || n == nil {
		return nil, err
	}
	return toNoteResponse(n), nil
}

// Update reemplaza título y contenido de una nota propia.
func (uc *NoteUseCase) Update(ctx context.Context, companyID, userID, id string, in dto.SaveNoteRequest) (*dto.NoteResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title es obligatorio", domain.ErrInvalidInput)
	}
	n, err := uc.owned(ctx, companyID, userID, id)
	if err != nil || n == nil {
		return nil, err
	}
	n.Title = title
	n.Content = in.Content
	n.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	uc.pub.publish(ctx, event.CollectionNotes, event.ActionUpdated, companyID, n.ID)
	return toNoteResponse(n), nil
}

// List lista las notas del usuario.
func (uc *NoteUseCase) List(ctx context.Context, companyID, userID string, limit, offset int) (*dto.NoteListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.ListByUser(ctx, companyID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NoteResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNoteResponse(n))
	}
	return &dto.NoteListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina una nota propia. domain.ErrNotFound si no existe o es ajena.
func (uc *NoteUseCase) Delete(ctx context.Context, companyID, userID, id string) error {
	n, err := uc.owned(ctx, companyID, userID, id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.pub.publish(ctx, event.CollectionNotes, event.ActionDeleted, companyID, id)
	return nil
}

func (uc *NoteUseCase) owned(ctx context.Context, companyID, userID, id string) (*entity.Note, error) {
	n, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil || n == nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, nil
	}
	return n, nil
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
