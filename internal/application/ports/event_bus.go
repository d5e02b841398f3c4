package ports

import (
	"context"

	"github.com/jhoicas/roteiro-api/internal/domain/event"
)

// EventHandler recibe eventos publicados. Debe retornar rápido; no debe publicar de forma síncrona
// sobre el mismo bus.
type EventHandler func(ctx context.Context, e event.Event)

// EventBus store observable: los casos de uso publican cambios y los cachés se suscriben.
type EventBus interface {
	Publish(ctx context.Context, e event.Event) error
	// Subscribe registra handler y devuelve la función para darlo de baja.
	Subscribe(handler EventHandler) (unsubscribe func())
}
