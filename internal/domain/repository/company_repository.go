package repository

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company y sus módulos (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByNIT(ctx context.Context, nit string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	Delete(ctx context.Context, id string) error

	ListModules(ctx context.Context, companyID string) ([]*entity.CompanyModule, error)
	SetModule(ctx context.Context, module *entity.CompanyModule) error
	// HasActiveModule devuelve error solo ante fallos de infraestructura.
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)

	ListAll(ctx context.Context) ([]*entity.Company, error)
	Upsert(ctx context.Context, company *entity.Company) error
	ListAllModules(ctx context.Context) ([]*entity.CompanyModule, error)
}
