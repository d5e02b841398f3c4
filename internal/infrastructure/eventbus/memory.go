package eventbus

import (
	"context"
	"sync"

	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
)

var _ ports.EventBus = (*Memory)(nil)

// Memory bus en proceso. Publish entrega de forma síncrona a los suscriptores en orden de alta.
type Memory struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]ports.EventHandler
	order    []int
}

// NewMemory construye un bus vacío.
func NewMemory() *Memory {
	return &Memory{handlers: make(map[int]ports.EventHandler)}
}

// Publish entrega e a todos los suscriptores actuales.
func (m *Memory) Publish(ctx context.Context, e event.Event) error {
	m.mu.RLock()
	hs := make([]ports.EventHandler, 0, len(m.order))
	for _, id := range m.order {
		hs = append(hs, m.handlers[id])
	}
	m.mu.RUnlock()

	for _, h := range hs {
		h(ctx, e)
	}
	return nil
}

// Subscribe registra handler; la función devuelta es idempotente.
func (m *Memory) Subscribe(handler ports.EventHandler) func() {
	m.mu.Lock()
	id := m.next
	m.next++
	m.handlers[id] = handler
	m.order = append(m.order, id)
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.handlers, id)
			for i, v := range m.order {
				if v == id {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
		})
	}
}
