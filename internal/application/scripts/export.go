package scripts

import (
	"context"
	"fmt"

	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
)

// ExportUseCase genera el PDF imprimible del roteiro de un producto.
type ExportUseCase struct {
	products  repository.ProductRepository
	steps     repository.ScriptStepRepository
	generator ports.ScriptPDFGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(products repository.ProductRepository, steps repository.ScriptStepRepository, generator ports.ScriptPDFGenerator) *ExportUseCase {
	return &ExportUseCase{products: products, steps: steps, generator: generator}
}

// ScriptPDF devuelve el PDF del producto con sus pasos en orden del almacén.
func (uc *ExportUseCase) ScriptPDF(ctx context.Context, companyID, productID string) ([]byte, error) {
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
	out, err := uc.generator.GenerateScript(p, steps)
	if err != nil {
		return nil, fmt.Errorf("pdf roteiro %s: %w", productID, err)
	}
	return out, nil
}
