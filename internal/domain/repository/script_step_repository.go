package repository

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// ScriptStepRepository define el puerto de persistencia para los pasos del roteiro.
// Los pasos se identifican por (productID, stepID).
type ScriptStepRepository interface {
	Create(ctx context.Context, step *entity.ScriptStep) error
	Get(ctx context.Context, productID, stepID string) (*entity.ScriptStep, error)
	Update(ctx context.Context, step *entity.ScriptStep) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.ScriptStep, error)
	Delete(ctx context.Context, productID, stepID string) error

	ListAll(ctx context.Context) ([]*entity.ScriptStep, error)
	Upsert(ctx context.Context, step *entity.ScriptStep) error
}
