package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/authz"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

func TestDefaultFor_PoliticaPorRol(t *testing.T) {
	admin := authz.DefaultFor(entity.RoleAdmin)
	assert.Equal(t, authz.All(), admin)
	assert.True(t, admin.Has(authz.RunMigration))

	sup := authz.DefaultFor(entity.RoleSupervisor)
	assert.True(t, sup.Has(authz.ManageScripts))
	assert.False(t, sup.Has(authz.ManageOperators))
	assert.False(t, sup.Has(authz.RunMigration))

	op := authz.DefaultFor(entity.RoleOperador)
	assert.ElementsMatch(t, []string{"navigate", "notes"}, op.Names())

	assert.Equal(t, 0, authz.DefaultFor("desconocido").Len(), "rol desconocido no recibe capacidades")
}

func TestParseSet_NombreDesconocidoEsError(t *testing.T) {
	_, err := authz.ParseSet([]string{"navigate", "volar"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSet_NamesRoundTrip(t *testing.T) {
	s := authz.NewSet(authz.ManageChannels, authz.Navigate)
	parsed, err := authz.ParseSet(s.Names())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)
	assert.Equal(t, 2, parsed.Len())
}

func TestEffective_OverrideReemplazaRol(t *testing.T) {
	u := &entity.User{Role: entity.RoleOperador, Capabilities: []string{"navigate", "export_scripts"}}
	s, err := authz.Effective(u)
	require.NoError(t, err)
	assert.True(t, s.Has(authz.ExportScripts))
	assert.False(t, s.Has(authz.ManageNotes), "el override es exacto, no se suma al rol")

	u.Capabilities = nil
	s, err = authz.Effective(u)
	require.NoError(t, err)
	assert.Equal(t, authz.DefaultFor(entity.RoleOperador), s)
}

func TestCapability_FueraDeRango(t *testing.T) {
	var s authz.Set
	s = s.With(authz.Capability(200))
	assert.Equal(t, 0, s.Len())
	assert.False(t, authz.All().Has(authz.Capability(200)))
}
