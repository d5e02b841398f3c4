package ports

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/repository"
)

// StepTxRunner ejecuta fn con un repositorio de pasos atado a una transacción:
// si fn falla no queda ningún paso escrito.
type StepTxRunner interface {
	RunSteps(ctx context.Context, fn func(steps repository.ScriptStepRepository) error) error
}
