package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
)

var _ ports.SessionStore = (*MemorySessions)(nil)

type sessionEntry struct {
	state     navigation.State
	expiresAt time.Time
}

// MemorySessions SessionStore en proceso para una sola instancia (sin REDIS_URL) y tests.
// Las sesiones vencidas se descartan al leerlas.
type MemorySessions struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]sessionEntry
}

// NewMemorySessions ttl <= 0 significa sin vencimiento.
func NewMemorySessions(ttl time.Duration) *MemorySessions {
	return &MemorySessions{ttl: ttl, now: time.Now, data: make(map[string]sessionEntry)}
}

func memKey(companyID, userID string) string { return companyID + "\x00" + userID }

// Get devuelve (nil, nil) si no hay sesión o ya venció.
func (s *MemorySessions) Get(_ context.Context, companyID, userID string) (*navigation.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := memKey(companyID, userID)
	e, ok := s.data[k]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.data, k)
		return nil, nil
	}
	st := e.state
	st.History = append([]string(nil), e.state.History...)
	return &st, nil
}

// Save guarda una copia del estado y renueva el vencimiento.
func (s *MemorySessions) Save(_ context.Context, companyID, userID string, state navigation.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := sessionEntry{state: state}
	e.state.History = append([]string(nil), state.History...)
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.data[memKey(companyID, userID)] = e
	return nil
}

// Delete descarta la sesión; no falla si no existía.
func (s *MemorySessions) Delete(_ context.Context, companyID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, memKey(companyID, userID))
	return nil
}
