// Package migration copia todas las colecciones del almacén local al remoto.
// La copia es de un solo sentido e idempotente: cada registro se escribe con Upsert.
package migration

import (
	"context"
	"time"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// Migrator copia source → target entidad por entidad.
type Migrator struct {
	source  repository.Set
	target  repository.Set
	bus     ports.EventBus
	metrics ports.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewMigrator construye el migrador. bus y metrics son opcionales.
func NewMigrator(source, target repository.Set, bus ports.EventBus, metrics ports.Metrics, log *logger.Logger) *Migrator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Migrator{source: source, target: target, bus: bus, metrics: metrics, log: log.Named("migration"), now: time.Now}
}

type step struct {
	entity string
	run    func(ctx context.Context) dto.MigrationEntityReport
}

// Run copia en orden: empresas (con sus módulos), usuarios, productos, pasos, tabulaciones,
// situaciones, canales y notas. El fallo de un tipo no impide los siguientes y el fallo de
// un registro no impide los demás del mismo tipo.
func (m *Migrator) Run(ctx context.Context) *dto.MigrationReport {
	report := &dto.MigrationReport{StartedAt: m.now(), Entities: []dto.MigrationEntityReport{}}
	steps := []step{
		{event.CollectionCompanies, func(ctx context.Context) dto.MigrationEntityReport {
			return copyAll(ctx, event.CollectionCompanies, m.source.Companies.ListAll, m.target.Companies.Upsert, func(c *entity.Company) string { return c.ID })
		}},
		{event.CollectionSettings, func(ctx context.Context) dto.MigrationEntityReport {
			return copyAll(ctx, event.CollectionSettings, m.source.Companies.ListAllModules, m.target.Companies.SetModule,
				func(cm *entity.CompanyModule) string { return cm.CompanyID + "/" + cm.ModuleName })
		}},
		{event.CollectionUsers, func(ctx context.Context) dto.MigrationEntityReport {
			return copyAll(ctx, event.CollectionUsers, m.source.Users.ListAll, m.target.Users.Upsert, func(u *entity.User) string { return u.ID })
		}},
		{event.CollectionProducts, func(ctx context.Context) dto.MigrationEntityReport {
			return copyAll(ctx, event.CollectionProducts, m.source.Products.ListAll, m.target.Products.Upsert, func(p *entity.Product) string { return p.ID })
		}},
		{event.CollectionSteps, func(ctx context.Context) dto.MigrationEntityReport {
			return copyAll(ctx, event.CollectionSteps, m.source.Steps.ListAll, m.target.Steps.Upsert, func(s *entity.ScriptStep) string { return s.ProductID + "/" + s.ID })
		}},
		{event.CollectionTabulations, func(ctx context.Context) dto.MigrationEntityReport {
			return copyAll(ctx, event.CollectionTabulations, m.source.Tabulations.ListAll, m.target.Tabulations.Upsert, func(t *entity.Tabulation) string { return t.ID })
		}},
		{event.CollectionSituations, func(ctx context.Context) dto.MigrationEntityReport {
			return copyAll(ctx, event.CollectionSituations, m.source.Situations.ListAll, m.target.Situations.Upsert, func(s *entity.Situation) string { return s.ID })
		}},
		{event.CollectionChannels, func(ctx context.Context) dto.MigrationEntityReport {
			return copyAll(ctx, event.CollectionChannels, m.source.Channels.ListAll, m.target.Channels.Upsert, func(c *entity.Channel) string { return c.ID })
		}},
		{event.CollectionNotes, func(ctx context.Context) dto.MigrationEntityReport {
			return copyAll(ctx, event.CollectionNotes, m.source.Notes.ListAll, m.target.Notes.Upsert, func(n *entity.Note) string { return n.ID })
		}},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			report.Entities = append(report.Entities, dto.MigrationEntityReport{Entity: s.entity, Errors: []dto.MigrationItemError{}, Error: err.Error()})
			continue
		}
		r := s.run(ctx)
		m.record(r)
		report.Entities = append(report.Entities, r)
	}
	report.FinishedAt = m.now()
	m.publish(ctx)
	return report
}

func (m *Migrator) record(r dto.MigrationEntityReport) {
	m.metrics.MigratedRecords(r.Entity, "ok", r.Migrated)
	m.metrics.MigratedRecords(r.Entity, "error", len(r.Errors))
	ev := m.log.Info()
	if r.Error != "" || len(r.Errors) > 0 {
		ev = m.log.Warn()
	}
	ev.Str("entity", r.Entity).Int("total", r.Total).Int("migrated", r.Migrated).Int("failed", len(r.Errors)).
		Str("error", r.Error).Msg("entidad migrada")
	for _, e := range r.Errors {
		m.log.Warn().Str("entity", r.Entity).Str("id", e.ID).Str("error", e.Error).Msg("registro no migrado")
	}
}

// publish avisa que todo el destino cambió, para que los cachés suscritos se vacíen.
func (m *Migrator) publish(ctx context.Context) {
	if m.bus == nil {
		return
	}
	e := event.Event{Collection: event.CollectionProducts, Action: event.ActionImported, At: m.now()}
	if err := m.bus.Publish(ctx, e); err != nil {
		m.log.Warn().Err(err).Msg("no se pudo publicar el fin de la migración")
	}
}

func copyAll[T any](
	ctx context.Context,
	name string,
	list func(context.Context) ([]*T, error),
	upsert func(context.Context, *T) error,
	id func(*T) string,
) dto.MigrationEntityReport {
	r := dto.MigrationEntityReport{Entity: name, Errors: []dto.MigrationItemError{}}
	items, err := list(ctx)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Total = len(items)
	for _, it := range items {
		if it == nil {
			continue
		}
		if err := upsert(ctx, it); err != nil {
			r.Errors = append(r.Errors, dto.MigrationItemError{ID: id(it), Error: err.Error()})
			continue
		}
		r.Migrated++
	}
	return r
}
