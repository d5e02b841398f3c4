package repository

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	// ListActive devuelve los productos activos del tenant en orden del almacén.
	ListActive(ctx context.Context, companyID string) ([]*entity.Product, error)
	// ListByScriptFile devuelve los productos (de todos los tenants) ligados a una familia de archivo.
	ListByScriptFile(ctx context.Context, scriptFile string) ([]*entity.Product, error)
	Delete(ctx context.Context, companyID, id string) error

	ListAll(ctx context.Context) ([]*entity.Product, error)
	Upsert(ctx context.Context, product *entity.Product) error
}
