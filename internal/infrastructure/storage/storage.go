// Package storage abre el backend de persistencia elegido por configuración.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/localstore"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/roteiro-api/pkg/config"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// Backend repositorios del driver activo y, si existe, el almacén local a migrar.
type Backend struct {
	Driver string
	Repos  repository.Set
	// Tx escritura transaccional de pasos; nil con el driver local.
	Tx ports.StepTxRunner
	// Local almacén SQLite origen de la migración; nil si no hay archivo local.
	Local *repository.Set

	pool  *pgxpool.Pool
	local *localstore.Store
}

// Open conecta el driver configurado. Con postgres aplica el esquema y, si existe el archivo
// local, lo abre como origen de la migración.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.Storage.Driver}
	switch cfg.Storage.Driver {
	case config.StorageLocal:
		store, err := localstore.Open(cfg.Storage.LocalPath)
		if err != nil {
			return nil, err
		}
		b.local = store
		b.Repos = localstore.NewSet(store)
		log.Info().Str("path", store.Path()).Msg("almacén local abierto")
		return b, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		b.pool = pool
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("esquema: %w", err)
		}
		if len(applied) > 0 {
			log.Info().Strs("files", applied).Msg("esquema aplicado")
		}
		b.Repos = postgres.NewSet(pool)
		b.Tx = postgres.NewTxRunner(pool)

		if _, err := os.Stat(cfg.Storage.LocalPath); err == nil {
			store, err := localstore.Open(cfg.Storage.LocalPath)
			if err != nil {
				log.Warn().Err(err).Str("path", cfg.Storage.LocalPath).Msg("almacén local no disponible para migrar")
			} else {
				set := localstore.NewSet(store)
				b.local = store
				b.Local = &set
			}
		}
		return b, nil
	default:
		return nil, fmt.Errorf("storage: driver %q desconocido", cfg.Storage.Driver)
	}
}

// Close libera conexiones y archivos.
func (b *Backend) Close() error {
	var errs []error
	if b.local != nil {
		errs = append(errs, b.local.Close())
	}
	if b.pool != nil {
		b.pool.Close()
	}
	return errors.Join(errs...)
}
