package repository

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// TabulationRepository define el puerto de persistencia para Tabulation (DIP).
type TabulationRepository interface {
	Create(ctx context.Context, t *entity.Tabulation) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Tabulation, error)
	Update(ctx context.Context, t *entity.Tabulation) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Tabulation, error)
	Delete(ctx context.Context, companyID, id string) error

	ListAll(ctx context.Context) ([]*entity.Tabulation, error)
	Upsert(ctx context.Context, t *entity.Tabulation) error
}
