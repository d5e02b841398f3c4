package ports

import "github.com/jhoicas/roteiro-api/internal/domain/entity"

// StepFileSource lee una familia de pasos desde su archivo JSON.
// Los pasos vuelven en el orden del archivo, sin ProductID ni CompanyID.
// Un nombre fuera de la lista permitida devuelve domain.ErrFileNotAllowed.
type StepFileSource interface {
	Load(name string) ([]entity.ScriptStep, error)
}
