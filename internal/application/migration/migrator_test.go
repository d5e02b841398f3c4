package migration_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/migration"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/eventbus"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/localstore"
)

func newSet(t *testing.T, name string) repository.Set {
	t.Helper()
	s, err := localstore.Open(filepath.Join(t.TempDir(), name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return localstore.NewSet(s)
}

var errRemote = errors.New("remoto caído")

// flakyProducts rechaza el upsert de un producto concreto.
type flakyProducts struct {
	repository.ProductRepository
	failID string
}

func (f flakyProducts) Upsert(ctx context.Context, p *entity.Product) error {
	if p.ID == f.failID {
		return errRemote
	}
	return f.ProductRepository.Upsert(ctx, p)
}

// brokenTabulations no puede listar.
type brokenTabulations struct {
	repository.TabulationRepository
}

func (brokenTabulations) ListAll(context.Context) ([]*entity.Tabulation, error) {
	return nil, errRemote
}

func seed(t *testing.T, set repository.Set) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, set.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Acme", NIT: "1", Status: "active"}))
	require.NoError(t, set.Users.Create(ctx, &entity.User{ID: "u1", CompanyID: "c1", Username: "ana", Role: entity.RoleOperador, Status: entity.UserActive}))
	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, set.Products.Create(ctx, &entity.Product{ID: id, CompanyID: "c1", Name: id, IsActive: true}))
	}
	require.NoError(t, set.Steps.Create(ctx, &entity.ScriptStep{ID: "s1", CompanyID: "c1", ProductID: "p1", Title: "Inicio"}))
	require.NoError(t, set.Tabulations.Create(ctx, &entity.Tabulation{ID: "t1", CompanyID: "c1", Name: "Venta"}))
	require.NoError(t, set.Notes.Create(ctx, &entity.Note{ID: "n1", CompanyID: "c1", UserID: "u1", Title: "Ojo"}))
}

func entityReport(t *testing.T, report *dto.MigrationReport, name string) dto.MigrationEntityReport {
	t.Helper()
	for _, r := range report.Entities {
		if r.Entity == name {
			return r
		}
	}
	t.Fatalf("sin reporte para %s", name)
	return dto.MigrationEntityReport{}
}

func TestMigrator_CopiaTodo(t *testing.T) {
	ctx := context.Background()
	source, target := newSet(t, "local.db"), newSet(t, "remoto.db")
	seed(t, source)

	bus := eventbus.NewMemory()
	var published []event.Event
	bus.Subscribe(func(_ context.Context, e event.Event) { published = append(published, e) })

	report := migration.NewMigrator(source, target, bus, nil, nil).Run(ctx)
	require.Len(t, report.Entities, 9)
	for _, r := range report.Entities {
		assert.Empty(t, r.Error, r.Entity)
		assert.Empty(t, r.Errors, r.Entity)
		assert.Equal(t, r.Total, r.Migrated, r.Entity)
	}
	assert.Equal(t, 3, entityReport(t, report, event.CollectionProducts).Migrated)
	assert.Len(t, published, 1)

	p, err := target.Products.GetByID(ctx, "c1", "p2")
	require.NoError(t, err)
	require.NotNil(t, p)
	s, err := target.Steps.Get(ctx, "p1", "s1")
	require.NoError(t, err)
	require.NotNil(t, s)

	// Una segunda corrida no duplica nada
	report = migration.NewMigrator(source, target, nil, nil, nil).Run(ctx)
	assert.Equal(t, 3, entityReport(t, report, event.CollectionProducts).Migrated)
	all, err := target.Products.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMigrator_FalloParcialNoDetieneElResto(t *testing.T) {
	ctx := context.Background()
	source, target := newSet(t, "local.db"), newSet(t, "remoto.db")
	seed(t, source)
	target.Products = flakyProducts{ProductRepository: target.Products, failID: "p2"}
	source.Tabulations = brokenTabulations{TabulationRepository: source.Tabulations}

	report := migration.NewMigrator(source, target, nil, nil, nil).Run(ctx)

	products := entityReport(t, report, event.CollectionProducts)
	assert.Equal(t, 3, products.Total)
	assert.Equal(t, 2, products.Migrated)
	require.Len(t, products.Errors, 1)
	assert.Equal(t, "p2", products.Errors[0].ID)

	tabulations := entityReport(t, report, event.CollectionTabulations)
	assert.Equal(t, errRemote.Error(), tabulations.Error)
	assert.Zero(t, tabulations.Migrated)

	// Los tipos posteriores se copian igual
	notes := entityReport(t, report, event.CollectionNotes)
	assert.Equal(t, 1, notes.Migrated)
	n, err := target.Notes.GetByID(ctx, "c1", "n1")
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestMigrator_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source, target := newSet(t, "local.db"), newSet(t, "remoto.db")

	report := migration.NewMigrator(source, target, nil, nil, nil).Run(ctx)
	require.NotEmpty(t, report.Entities)
	for _, r := range report.Entities {
		assert.NotEmpty(t, r.Error, r.Entity)
	}
}
