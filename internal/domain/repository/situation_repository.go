package repository

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// SituationRepository define el puerto de persistencia para Situation (DIP).
type SituationRepository interface {
	Create(ctx context.Context, s *entity.Situation) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Situation, error)
	Update(ctx context.Context, s *entity.Situation) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Situation, error)
	Delete(ctx context.Context, companyID, id string) error

	ListAll(ctx context.Context) ([]*entity.Situation, error)
	Upsert(ctx context.Context, s *entity.Situation) error
}
