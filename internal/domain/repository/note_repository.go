package repository

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// NoteRepository define el puerto de persistencia para Note. Las notas son privadas de su autor.
type NoteRepository interface {
	Create(ctx context.Context, n *entity.Note) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Note, error)
	Update(ctx context.Context, n *entity.Note) error
	ListByUser(ctx context.Context, companyID, userID string, limit, offset int) ([]*entity.Note, error)
	Delete(ctx context.Context, companyID, id string) error

	ListAll(ctx context.Context) ([]*entity.Note, error)
	Upsert(ctx context.Context, n *entity.Note) error
}
