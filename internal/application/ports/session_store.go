package ports

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
)

// SessionStore persiste el estado de navegación de cada operador entre peticiones.
// Get devuelve (nil, nil) si el operador no tiene sesión.
type SessionStore interface {
	Get(ctx context.Context, companyID, userID string) (*navigation.State, error)
	Save(ctx context.Context, companyID, userID string, state navigation.State) error
	Delete(ctx context.Context, companyID, userID string) error
}
