// Package localstore es el almacén local/legado: una tabla clave-valor en SQLite donde cada
// colección vive como un arreglo JSON bajo una clave fija ("roteiro:products", ...).
// Sirve de backend alternativo (STORAGE_DRIVER=local) y de origen de la migración al remoto.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/roteiro-api/internal/domain"
	_ "modernc.org/sqlite"
)

// Claves fijas de cada colección.
const (
	KeyCompanies   = "roteiro:companies"
	KeyModules     = "roteiro:companyModules"
	KeyUsers       = "roteiro:users"
	KeyProducts    = "roteiro:products"
	KeySteps       = "roteiro:scriptSteps"
	KeyTabulations = "roteiro:tabulations"
	KeySituations  = "roteiro:situations"
	KeyChannels    = "roteiro:channels"
	KeyNotes       = "roteiro:notes"
)

// Store acceso al archivo SQLite. Las escrituras leen, modifican y reescriben la colección
// completa bajo un mutex del proceso.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// Open abre (o crea) el archivo y la tabla kv.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("localstore: crear directorio: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: abrir %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	const schema = `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: crear tabla: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path ruta del archivo.
func (s *Store) Path() string { return s.path }

// Get devuelve el valor crudo de key; ok=false si no existe.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: localstore get %s: %v", domain.ErrStoreUnavailable, key, err)
	}
	return v, true, nil
}

// Put reemplaza el valor de key.
func (s *Store) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, value)
	if err != nil {
		return fmt.Errorf("%w: localstore put %s: %v", domain.ErrStoreUnavailable, key, err)
	}
	return nil
}

// load lee la colección key. Clave ausente o vacía = colección vacía.
func load[R any](ctx context.Context, s *Store, key string) ([]R, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" || raw == "null" {
		return []R{}, nil
	}
	var out []R
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("localstore: colección %s corrupta: %w", key, err)
	}
	return out, nil
}

// update aplica fn sobre la colección key y la reescribe si fn no falla.
func update[R any](ctx context.Context, s *Store, key string, fn func([]R) ([]R, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := load[R](ctx, s, key)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("localstore: serializar %s: %w", key, err)
	}
	return s.Put(ctx, key, string(raw))
}

func page[R any](items []R, limit, offset int) []R {
	if offset >= len(items) {
		return []R{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
