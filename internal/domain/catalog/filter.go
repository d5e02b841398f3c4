// Package catalog reglas puras sobre el catálogo de productos.
package catalog

import (
	"fmt"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// FilterProducts devuelve los productos activos cuyo conjunto de tipos de atendimento y de pessoa
// incluye ambos valores. Conserva el orden de entrada; no hay desempate especial.
func FilterProducts(products []*entity.Product, attendanceType, personType string) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p == nil || !p.IsActive {
			continue
		}
		if p.Supports(attendanceType, personType) {
			out = append(out, p)
		}
	}
	return out
}

// ValidateSelection valida los valores elegidos por el operador antes de filtrar.
func ValidateSelection(attendanceType, personType string) error {
	if !entity.IsValidAttendanceType(attendanceType) {
		return fmt.Errorf("%w: tipo de atendimento %q", domain.ErrInvalidInput, attendanceType)
	}
	if !entity.IsValidPersonType(personType) {
		return fmt.Errorf("%w: tipo de pessoa %q", domain.ErrInvalidInput, personType)
	}
	return nil
}

// ValidateTags valida las etiquetas de un producto (admin). Listas vacías son válidas: el producto no aparece en ningún filtro.
func ValidateTags(attendanceTypes, personTypes []string) error {
	for _, t := range attendanceTypes {
		if !entity.IsValidAttendanceType(t) {
			return fmt.Errorf("%w: tipo de atendimento %q", domain.ErrInvalidInput, t)
		}
	}
	for _, t := range personTypes {
		if !entity.IsValidPersonType(t) {
			return fmt.Errorf("%w: tipo de pessoa %q", domain.ErrInvalidInput, t)
		}
	}
	return nil
}
