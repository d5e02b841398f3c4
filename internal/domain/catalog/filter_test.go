package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/catalog"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

func product(id string, active bool, att, per []string) *entity.Product {
	return &entity.Product{ID: id, IsActive: active, AttendanceTypes: att, PersonTypes: per}
}

func TestFilterProducts_SoloCoincidenAmbasEtiquetas(t *testing.T) {
	list := []*entity.Product{
		product("a", true, []string{"ativo"}, []string{"fisica"}),
		product("b", true, []string{"receptivo"}, []string{"juridica"}),
	}
	got := catalog.FilterProducts(list, entity.AttendanceAtivo, entity.PersonFisica)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFilterProducts_ExcluyeInactivosYConservaOrden(t *testing.T) {
	both := []string{"ativo", "receptivo"}
	list := []*entity.Product{
		product("z", true, both, []string{"fisica", "juridica"}),
		product("inactivo", false, both, []string{"fisica"}),
		product("a", true, []string{"ativo"}, []string{"fisica"}),
		product("solo-pj", true, both, []string{"juridica"}),
		nil,
	}
	got := catalog.FilterProducts(list, entity.AttendanceAtivo, entity.PersonFisica)
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"z", "a"}, ids)
}

func TestFilterProducts_SinEtiquetasNoAparece(t *testing.T) {
	got := catalog.FilterProducts([]*entity.Product{product("x", true, nil, nil)}, "ativo", "fisica")
	assert.Empty(t, got)
}

func TestValidateSelection(t *testing.T) {
	assert.NoError(t, catalog.ValidateSelection("receptivo", "juridica"))
	assert.ErrorIs(t, catalog.ValidateSelection("passivo", "fisica"), domain.ErrInvalidInput)
	assert.ErrorIs(t, catalog.ValidateSelection("ativo", "empresa"), domain.ErrInvalidInput)
}

func TestValidateTags(t *testing.T) {
	assert.NoError(t, catalog.ValidateTags(nil, nil))
	assert.NoError(t, catalog.ValidateTags([]string{"ativo", "receptivo"}, []string{"fisica"}))
	assert.ErrorIs(t, catalog.ValidateTags([]string{"ativo"}, []string{"outro"}), domain.ErrInvalidInput)
}
