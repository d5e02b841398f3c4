package navigation_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
)

const testCompany = "empresa-1"

// fakeCatalog catálogo en memoria; steps conserva el orden de inserción por producto.
type fakeCatalog struct {
	products map[string]*entity.Product
	steps    map[string][]*entity.ScriptStep
	err      error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]*entity.Product{}, steps: map[string][]*entity.ScriptStep{}}
}

func (f *fakeCatalog) Product(_ context.Context, companyID, id string) (*entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := f.products[id]
	if p == nil || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}

func (f *fakeCatalog) Step(_ context.Context, productID, stepID string) (*entity.ScriptStep, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.steps[productID] {
		if s.ID == stepID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) Steps(_ context.Context, productID string) ([]*entity.ScriptStep, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.steps[productID], nil
}

func ptr(s string) *string { return &s }

func step(id, title string, buttons ...entity.Button) *entity.ScriptStep {
	return &entity.ScriptStep{ID: id, ProductID: "prod", CompanyID: testCompany, Title: title, Buttons: buttons}
}

func btn(id string, next *string) entity.Button {
	return entity.Button{ID: id, Label: id, NextStepID: next}
}

// seed: inicio → abordagem → oferta → encerramento (fin), con un botón colgante en oferta.
func seed() *fakeCatalog {
	c := newFakeCatalog()
	c.products["prod"] = &entity.Product{ID: "prod", CompanyID: testCompany, ScriptID: "inicio", IsActive: true}
	c.steps["prod"] = []*entity.ScriptStep{
		step("inicio", "Início", btn("b1", ptr("abordagem"))),
		step("abordagem", "Abordagem ao cliente", btn("b2", ptr("oferta")), btn("volta", ptr("inicio"))),
		step("oferta", "Oferta", btn("b3", ptr("encerramento")), btn("quebrado", ptr("nao-existe"))),
		step("encerramento", "Encerramento", btn("fim", nil)),
	}
	return c
}

func started(t *testing.T, c *fakeCatalog) *navigation.Navigator {
	t.Helper()
	nav := navigation.New(c, testCompany)
	require.NoError(t, nav.Start(context.Background(), "prod", navigation.Selection{AttendanceType: "ativo", PersonType: "fisica"}))
	return nav
}

func TestStart_EntraEnPasoInicial(t *testing.T) {
	nav := started(t, seed())
	assert.Equal(t, navigation.Active, nav.Status())
	assert.Equal(t, "inicio", nav.Current().ID)
	assert.Equal(t, []string{"inicio"}, nav.History())
	assert.Equal(t, "ativo", nav.State().AttendanceType)
}

func TestStart_ProductoInexistenteQuedaIdle(t *testing.T) {
	nav := navigation.New(seed(), testCompany)
	err := nav.Start(context.Background(), "otro", navigation.Selection{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, navigation.Idle, nav.Status())
	assert.Empty(t, nav.History())
}

func TestStart_OtroTenantNoVeElProducto(t *testing.T) {
	nav := navigation.New(seed(), "empresa-2")
	assert.ErrorIs(t, nav.Start(context.Background(), "prod", navigation.Selection{}), domain.ErrProductNotFound)
}

func TestStart_PasoInicialInexistente(t *testing.T) {
	c := seed()
	c.products["prod"].ScriptID = "fantasma"
	nav := navigation.New(c, testCompany)
	assert.ErrorIs(t, nav.Start(context.Background(), "prod", navigation.Selection{}), domain.ErrStepNotFound)
	assert.Equal(t, navigation.Idle, nav.Status())
}

func TestStart_ProductoInactivo(t *testing.T) {
	c := seed()
	c.products["prod"].IsActive = false
	nav := navigation.New(c, testCompany)
	assert.ErrorIs(t, nav.Start(context.Background(), "prod", navigation.Selection{}), domain.ErrProductNotFound)
}

func TestStart_FalloConservaSesionPrevia(t *testing.T) {
	nav := started(t, seed())
	_, err := nav.SelectButton(context.Background(), "b1")
	require.NoError(t, err)

	require.Error(t, nav.Start(context.Background(), "otro", navigation.Selection{}))
	assert.Equal(t, "abordagem", nav.Current().ID)
	assert.Equal(t, []string{"inicio", "abordagem"}, nav.History())
}

func TestSelectButton_AvanzaYApila(t *testing.T) {
	nav := started(t, seed())
	out, err := nav.SelectButton(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, navigation.Moved, out)
	assert.Equal(t, "abordagem", nav.Current().ID)
	assert.Equal(t, []string{"inicio", "abordagem"}, nav.History())
}

func TestSelect_NilEquivaleAReset(t *testing.T) {
	a := started(t, seed())
	for _, b := range []string{"b1", "b2", "b3"} {
		_, err := a.SelectButton(context.Background(), b)
		require.NoError(t, err)
	}
	out, err := a.SelectButton(context.Background(), "fim")
	require.NoError(t, err)
	assert.Equal(t, navigation.Ended, out)

	b := started(t, seed())
	b.Reset()

	assert.Equal(t, b.Status(), a.Status())
	assert.Equal(t, b.State(), a.State())
	assert.Equal(t, navigation.Idle, a.Status())
	assert.Nil(t, a.Product())
}

func TestSelect_DestinoInexistenteNoCambiaEstado(t *testing.T) {
	nav := started(t, seed())
	ctx := context.Background()
	_, _ = nav.SelectButton(ctx, "b1")
	_, _ = nav.SelectButton(ctx, "b2")
	before := nav.State()

	_, err := nav.SelectButton(ctx, "quebrado")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDanglingReference)
	assert.ErrorIs(t, err, domain.ErrStepNotFound)
	assert.Equal(t, before, nav.State())
	assert.Equal(t, "oferta", nav.Current().ID)
}

func TestSelectButton_BotonAjeno(t *testing.T) {
	nav := started(t, seed())
	_, err := nav.SelectButton(context.Background(), "b3")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "inicio", nav.Current().ID)
}

func TestOperacionesEnIdle(t *testing.T) {
	nav := navigation.New(seed(), testCompany)
	ctx := context.Background()
	_, err := nav.Select(ctx, ptr("inicio"))
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	_, err = nav.Search(ctx, "abordagem")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	moved, err := nav.Back(ctx)
	assert.NoError(t, err)
	assert.False(t, moved)
}

func TestSelectNil_EquivaleAResetEnCualquierEstado(t *testing.T) {
	ctx := context.Background()

	idle := navigation.New(seed(), testCompany)
	outcome, err := idle.Select(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, navigation.Ended, outcome)
	assert.Equal(t, navigation.Idle, idle.Status())
	assert.Empty(t, idle.History())

	active := started(t, seed())
	_, err = active.SelectButton(ctx, "b1")
	require.NoError(t, err)
	outcome, err = active.Select(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, navigation.Ended, outcome)
	assert.Equal(t, navigation.Idle, active.Status())
	assert.Empty(t, active.History())
	assert.False(t, active.State().Active())
}

func TestBack_ConUnSoloPasoNoHaceNada(t *testing.T) {
	nav := started(t, seed())
	moved, err := nav.Back(context.Background())
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, "inicio", nav.Current().ID)
	assert.Equal(t, []string{"inicio"}, nav.History())
}

// Tras N avances, k retrocesos (k < N+1) dejan como actual el paso que lo era k avances atrás.
func TestBack_DeshaceAvancesEnOrden(t *testing.T) {
	ctx := context.Background()
	buttons := []string{"b1", "volta", "b1", "b2", "b3"}
	for k := 1; k <= len(buttons); k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			nav := started(t, seed())
			visited := []string{nav.Current().ID}
			for _, b := range buttons {
				_, err := nav.SelectButton(ctx, b)
				require.NoError(t, err)
				visited = append(visited, nav.Current().ID)
			}
			for i := 0; i < k; i++ {
				moved, err := nav.Back(ctx)
				require.NoError(t, err)
				require.True(t, moved)
			}
			want := visited[len(visited)-1-k]
			assert.Equal(t, want, nav.Current().ID)
			assert.Equal(t, visited[:len(visited)-k], nav.History())
		})
	}
}

func TestReset_SiempreIdle(t *testing.T) {
	nav := started(t, seed())
	_, _ = nav.SelectButton(context.Background(), "b1")
	nav.Reset()
	assert.Equal(t, navigation.Idle, nav.Status())
	assert.Empty(t, nav.History())
	assert.False(t, nav.State().Active())

	nav.Reset()
	assert.Equal(t, navigation.Idle, nav.Status())
}

func TestSearch_SaltaAlPrimerTituloCoincidente(t *testing.T) {
	nav := started(t, seed())
	s, err := nav.Search(context.Background(), "ABORDAGEM")
	require.NoError(t, err)
	assert.Equal(t, "abordagem", s.ID)
	assert.Equal(t, "abordagem", nav.Current().ID)
	assert.Equal(t, []string{"inicio", "abordagem"}, nav.History())

	moved, err := nav.Back(context.Background())
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, "inicio", nav.Current().ID)
}

func TestSearch_IgnoraAcentos(t *testing.T) {
	nav := started(t, seed())
	s, err := nav.Search(context.Background(), "inicio")
	require.NoError(t, err)
	assert.Equal(t, "inicio", s.ID)
	assert.Equal(t, []string{"inicio"}, nav.History(), "no duplica el paso actual")
}

func TestSearch_SinCoincidenciaNoCambiaEstado(t *testing.T) {
	nav := started(t, seed())
	before := nav.State()
	_, err := nav.Search(context.Background(), "cancelamento")
	assert.ErrorIs(t, err, domain.ErrStepNotFound)
	assert.Equal(t, before, nav.State())

	_, err = nav.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrStepNotFound)
	assert.Equal(t, before, nav.State())
}

func TestRestore_ReconstruyeSesion(t *testing.T) {
	c := seed()
	nav := started(t, c)
	_, _ = nav.SelectButton(context.Background(), "b1")
	saved := nav.State()

	other := navigation.New(c, testCompany)
	require.NoError(t, other.Restore(context.Background(), saved))
	assert.Equal(t, "abordagem", other.Current().ID)
	assert.Equal(t, saved, other.State())

	moved, err := other.Back(context.Background())
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, "inicio", other.Current().ID)
}

func TestRestore_PasoBorradoDejaIdle(t *testing.T) {
	c := seed()
	nav := navigation.New(c, testCompany)
	err := nav.Restore(context.Background(), navigation.State{ProductID: "prod", History: []string{"inicio", "borrado"}})
	assert.ErrorIs(t, err, domain.ErrStepNotFound)
	assert.Equal(t, navigation.Idle, nav.Status())

	require.NoError(t, nav.Restore(context.Background(), navigation.State{}))
	assert.Equal(t, navigation.Idle, nav.Status())
}

func TestErroresDelCatalogoSePropagan(t *testing.T) {
	c := seed()
	nav := started(t, c)
	boom := errors.New("db caída")
	c.err = boom
	_, err := nav.SelectButton(context.Background(), "b1")
	assert.ErrorIs(t, err, boom)
	c.err = nil
	assert.Equal(t, "inicio", nav.Current().ID)
}
