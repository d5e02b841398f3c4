package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
	"github.com/redis/go-redis/v9"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore guarda el estado de navegación de cada operador como JSON con TTL.
// Cada Save renueva el vencimiento.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore construye el store. ttl <= 0 deja las sesiones sin vencimiento.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(companyID, userID string) string {
	return "nav:" + companyID + ":" + userID
}

// Get devuelve (nil, nil) si no hay sesión o ya venció.
func (s *SessionStore) Get(ctx context.Context, companyID, userID string) (*navigation.State, error) {
	raw, err := s.client.Get(ctx, sessionKey(companyID, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get session: %v", domain.ErrStoreUnavailable, err)
	}
	var st navigation.State
	if err := json.Unmarshal(raw, &st); err != nil {
		// Una sesión ilegible equivale a no tener sesión.
		return nil, nil
	}
	return &st, nil
}

// Save escribe el estado y renueva el TTL.
func (s *SessionStore) Save(ctx context.Context, companyID, userID string, state navigation.State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(companyID, userID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: save session: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete descarta la sesión; no falla si no existía.
func (s *SessionStore) Delete(ctx context.Context, companyID, userID string) error {
	if err := s.client.Del(ctx, sessionKey(companyID, userID)).Err(); err != nil {
		return fmt.Errorf("%w: delete session: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
