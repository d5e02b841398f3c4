package scripts_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/application/scripts"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/eventbus"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/localstore"
)

func newSet(t *testing.T) repository.Set {
	t.Helper()
	s, err := localstore.Open(filepath.Join(t.TempDir(), "roteiro.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return localstore.NewSet(s)
}

// countingSteps cuenta las lecturas completas de un producto.
type countingSteps struct {
	repository.ScriptStepRepository
	lists atomic.Int32
}

func (c *countingSteps) ListByProduct(ctx context.Context, productID string) ([]*entity.ScriptStep, error) {
	c.lists.Add(1)
	return c.ScriptStepRepository.ListByProduct(ctx, productID)
}

func ptr(s string) *string { return &s }

func seedProduct(t *testing.T, set repository.Set) *entity.Product {
	t.Helper()
	ctx := context.Background()
	p := &entity.Product{ID: "p1", CompanyID: "c1", Name: "Fibra", ScriptID: "s1", IsActive: true}
	require.NoError(t, set.Products.Create(ctx, p))
	require.NoError(t, set.Steps.Create(ctx, &entity.ScriptStep{
		ID: "s1", CompanyID: "c1", ProductID: "p1", Title: "Saludo",
		Buttons: []entity.Button{{ID: "b1", Label: "Seguir", NextStepID: ptr("s2")}},
	}))
	return p
}

func TestCatalog_CacheaHastaQueElBusAvisa(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	seedProduct(t, set)
	steps := &countingSteps{ScriptStepRepository: set.Steps}
	bus := eventbus.NewMemory()
	catalog := scripts.NewCatalog(set.Products, steps, bus)
	defer catalog.Close()

	s, err := catalog.Step(ctx, "p1", "s1")
	require.NoError(t, err)
	require.NotNil(t, s)
	missing, err := catalog.Step(ctx, "p1", "s2")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Equal(t, int32(1), steps.lists.Load())

	// Un alta a través del caso de uso invalida el producto
	stepUC := scripts.NewStepUseCase(set.Products, set.Steps, nil, bus, nil)
	_, err = stepUC.Create(ctx, "c1", "p1", dto.SaveStepRequest{ID: "s2", Title: "Datos"})
	require.NoError(t, err)

	s2, err := catalog.Step(ctx, "p1", "s2")
	require.NoError(t, err)
	require.NotNil(t, s2)
	assert.Equal(t, "Datos", s2.Title)
	assert.Equal(t, int32(2), steps.lists.Load())
}

func TestCatalog_ProductoDeOtroTenant(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	seedProduct(t, set)
	catalog := scripts.NewCatalog(set.Products, set.Steps, nil)

	p, err := catalog.Product(ctx, "c1", "p1")
	require.NoError(t, err)
	require.NotNil(t, p)

	other, err := catalog.Product(ctx, "c2", "p1")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestStepUseCase_ValidaBotones(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	seedProduct(t, set)
	uc := scripts.NewStepUseCase(set.Products, set.Steps, nil, nil, nil)

	tests := []struct {
		name string
		in   dto.SaveStepRequest
		want error
	}{
		{"sin título", dto.SaveStepRequest{ID: "x"}, domain.ErrInvalidInput},
		{"botón sin label", dto.SaveStepRequest{ID: "x", Title: "X", Buttons: []dto.ButtonDTO{{ID: "b"}}}, domain.ErrInvalidInput},
		{"botón repetido", dto.SaveStepRequest{ID: "x", Title: "X", Buttons: []dto.ButtonDTO{
			{ID: "b", Label: "Uno"}, {ID: "b", Label: "Dos"},
		}}, domain.ErrInvalidInput},
		{"paso repetido", dto.SaveStepRequest{ID: "s1", Title: "Otra vez"}, domain.ErrDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, "c1", "p1", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := uc.Create(ctx, "c2", "p1", dto.SaveStepRequest{ID: "y", Title: "Y"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStepUseCase_DestinoVacioEsFin(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	seedProduct(t, set)
	uc := scripts.NewStepUseCase(set.Products, set.Steps, nil, nil, nil)

	out, err := uc.Create(ctx, "c1", "p1", dto.SaveStepRequest{ID: "s9", Title: "Fin", Buttons: []dto.ButtonDTO{
		{ID: "b", Label: "Cerrar", NextStepID: ptr("  ")},
	}})
	require.NoError(t, err)
	require.Len(t, out.Buttons, 1)
	assert.Nil(t, out.Buttons[0].NextStepID)
}

// fakeSource devuelve siempre los mismos pasos.
type fakeSource struct {
	steps []entity.ScriptStep
	err   error
}

func (f fakeSource) Load(name string) ([]entity.ScriptStep, error) {
	if !entity.IsAllowedStepFile(name) {
		return nil, domain.ErrFileNotAllowed
	}
	return f.steps, f.err
}

// fakeTx aplica fn directamente sobre el repositorio y cuenta las transacciones.
type fakeTx struct {
	steps repository.ScriptStepRepository
	runs  int
}

func (f *fakeTx) RunSteps(ctx context.Context, fn func(steps repository.ScriptStepRepository) error) error {
	f.runs++
	return fn(f.steps)
}

var _ ports.StepTxRunner = (*fakeTx)(nil)

// recordingMetrics guarda los pasos importados por familia.
type recordingMetrics struct {
	ports.NopMetrics
	imported map[string]int
}

func (m *recordingMetrics) StepsImported(file string, n int) { m.imported[file] += n }

func templates() []entity.ScriptStep {
	return []entity.ScriptStep{
		{ID: "s1", Title: "Saludo nuevo", Content: "<p>Hola<script>x()</script></p>",
			Buttons: []entity.Button{{ID: "b1", Label: "Seguir", NextStepID: ptr("s2")}}},
		{ID: "s2", Title: "Cierre"},
	}
}

type stripScripts struct{}

func (stripScripts) Sanitize(html string) string { return "<p>Hola</p>" }

func TestImportUseCase_ImportaYLigaElProducto(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	seedProduct(t, set)
	tx := &fakeTx{steps: set.Steps}
	metrics := &recordingMetrics{imported: map[string]int{}}
	uc := scripts.NewImportUseCase(set.Products, set.Steps, fakeSource{steps: templates()}, stripScripts{}, nil, metrics, nil).
		WithTx(tx)

	out, err := uc.Import(ctx, "c1", "p1", dto.ImportStepsRequest{File: entity.StepFileReceptivo, Bind: true})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Imported)
	assert.Equal(t, 1, tx.runs)
	assert.Equal(t, 2, metrics.imported[entity.StepFileReceptivo])

	s1, err := set.Steps.Get(ctx, "p1", "s1")
	require.NoError(t, err)
	require.NotNil(t, s1)
	assert.Equal(t, "Saludo nuevo", s1.Title)
	assert.Equal(t, "<p>Hola</p>", s1.Content)
	assert.Equal(t, "c1", s1.CompanyID)

	p, err := set.Products.GetByID(ctx, "c1", "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.StepFileReceptivo, p.ScriptFile)

	// La familia ligada se re-importa completa
	n, err := uc.ReimportFamily(ctx, entity.StepFileReceptivo)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, tx.runs)
}

func TestImportUseCase_Errores(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	seedProduct(t, set)

	uc := scripts.NewImportUseCase(set.Products, set.Steps, fakeSource{steps: templates()}, nil, nil, nil, nil)
	_, err := uc.Import(ctx, "c1", "p1", dto.ImportStepsRequest{File: "../etc/passwd"})
	assert.ErrorIs(t, err, domain.ErrFileNotAllowed)

	_, err = uc.Import(ctx, "c1", "no-existe", dto.ImportStepsRequest{File: entity.StepFilePJ})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	broken := errors.New("archivo ilegible")
	uc = scripts.NewImportUseCase(set.Products, set.Steps, fakeSource{err: broken}, nil, nil, nil, nil)
	_, err = uc.Import(ctx, "c1", "p1", dto.ImportStepsRequest{File: entity.StepFilePJ})
	assert.ErrorIs(t, err, broken)

	// Sin productos ligados no se lee el archivo
	n, err := uc.ReimportFamily(ctx, entity.StepFileAtivo)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLintUseCase_ReportaDestinosInexistentes(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	seedProduct(t, set)

	report, err := scripts.NewLintUseCase(set.Products, set.Steps).Lint(ctx, "c1", "p1")
	require.NoError(t, err)
	assert.False(t, report.OK())
	require.Len(t, report.Dangling, 1)
	assert.Equal(t, "s2", report.Dangling[0].NextStepID)
}
