package ports

import "github.com/jhoicas/roteiro-api/internal/domain/entity"

// ScriptPDFGenerator genera el PDF imprimible del roteiro de un producto.
type ScriptPDFGenerator interface {
	GenerateScript(product *entity.Product, steps []*entity.ScriptStep) ([]byte, error)
}
