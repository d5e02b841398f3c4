package scripts

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
)

// LintUseCase revisa la integridad del grafo de pasos de un producto.
type LintUseCase struct {
	products repository.ProductRepository
	steps    repository.ScriptStepRepository
}

// NewLintUseCase construye el caso de uso.
func NewLintUseCase(products repository.ProductRepository, steps repository.ScriptStepRepository) *LintUseCase {
	return &LintUseCase{products: products, steps: steps}
}

// Lint reporta referencias colgadas y pasos inalcanzables desde el paso de entrada.
func (uc *LintUseCase) Lint(ctx context.Context, companyID, productID string) (*navigation.LintReport, error) {
	p, err := uc.products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	steps, err := uc.steps.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	report := navigation.Lint(p.ScriptID, steps)
	return &report, nil
}
