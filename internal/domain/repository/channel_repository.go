package repository

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// ChannelRepository define el puerto de persistencia para Channel (DIP).
type ChannelRepository interface {
	Create(ctx context.Context, ch *entity.Channel) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Channel, error)
	Update(ctx context.Context, ch *entity.Channel) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Channel, error)
	Delete(ctx context.Context, companyID, id string) error

	ListAll(ctx context.Context) ([]*entity.Channel, error)
	Upsert(ctx context.Context, ch *entity.Channel) error
}
