package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/usecase"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
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

func boolPtr(b bool) *bool { return &b }

func TestCompanyUseCase_CreaModulosYAdmin(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	bus := eventbus.NewMemory()
	var collections []string
	bus.Subscribe(func(_ context.Context, e event.Event) { collections = append(collections, e.Collection) })

	operators := usecase.NewOperatorUseCase(set.Users, bus, nil)
	companies := usecase.NewCompanyUseCase(set.Companies, operators, bus, nil)
	out, err := companies.Create(ctx, dto.CreateCompanyRequest{
		Name: "Acme", NIT: "800", AdminUsername: "root", AdminPassword: "clave",
	})
	require.NoError(t, err)
	assert.Equal(t, "active", out.Status)

	modules, err := usecase.NewModuleService(set.Companies, nil, nil).List(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, modules, len(entity.Modules))
	for _, m := range modules {
		assert.True(t, m.IsActive, m.Name)
	}

	admin, err := set.Users.GetByUsername(ctx, out.ID, "root")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.NotEqual(t, "clave", admin.PasswordHash)
	assert.Contains(t, collections, event.CollectionCompanies)

	_, err = companies.Create(ctx, dto.CreateCompanyRequest{Name: "Otra", NIT: "800"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = companies.Create(ctx, dto.CreateCompanyRequest{Name: "Otra", NIT: "801", AdminUsername: "solo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestModuleService_Set(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	svc := usecase.NewModuleService(set.Companies, nil, nil)

	_, err := svc.Set(ctx, "c1", "facturacion", dto.SetModuleRequest{IsActive: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ok, err := svc.HasActiveModule(ctx, "c1", entity.ModuleNotes)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Set(ctx, "c1", entity.ModuleNotes, dto.SetModuleRequest{IsActive: true})
	require.NoError(t, err)
	ok, err = svc.HasActiveModule(ctx, "c1", entity.ModuleNotes)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.HasActiveModule(ctx, "", entity.ModuleNotes)
	assert.Error(t, err)
}

func TestOperatorUseCase(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	uc := usecase.NewOperatorUseCase(set.Users, nil, nil)

	ana, err := uc.Create(ctx, "c1", dto.CreateOperatorRequest{Username: " ana ", Password: "x", Name: "Ana", Role: entity.RoleOperador})
	require.NoError(t, err)
	assert.Equal(t, "ana", ana.Username)
	assert.ElementsMatch(t, []string{"navigate", "notes"}, ana.Capabilities)

	tests := []struct {
		name string
		in   dto.CreateOperatorRequest
		want error
	}{
		{"username repetido", dto.CreateOperatorRequest{Username: "ana", Password: "x", Name: "Otra", Role: entity.RoleOperador}, domain.ErrUsernameTaken},
		{"rol inválido", dto.CreateOperatorRequest{Username: "bob", Password: "x", Name: "Bob", Role: "jefe"}, domain.ErrInvalidInput},
		{"capacidad desconocida", dto.CreateOperatorRequest{Username: "bob", Password: "x", Name: "Bob", Role: entity.RoleOperador, Capabilities: []string{"volar"}}, domain.ErrInvalidInput},
		{"sin password", dto.CreateOperatorRequest{Username: "bob", Name: "Bob", Role: entity.RoleOperador}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, "c1", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// El mismo username en otra empresa es válido
	_, err = uc.Create(ctx, "c2", dto.CreateOperatorRequest{Username: "ana", Password: "x", Name: "Ana", Role: entity.RoleSupervisor})
	require.NoError(t, err)

	caps := []string{"navigate", "export_scripts"}
	updated, err := uc.Update(ctx, "c1", ana.ID, dto.UpdateOperatorRequest{Capabilities: &caps})
	require.NoError(t, err)
	assert.ElementsMatch(t, caps, updated.Capabilities)

	missing, err := uc.Update(ctx, "c1", "no-existe", dto.UpdateOperatorRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, uc.Delete(ctx, "c1", ana.ID, ana.ID), domain.ErrConflict)
	require.NoError(t, uc.Delete(ctx, "c1", "admin", ana.ID))
	assert.ErrorIs(t, uc.Delete(ctx, "c1", "admin", ana.ID), domain.ErrNotFound)
}

func TestNoteUseCase_NotasPrivadas(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	uc := usecase.NewNoteUseCase(set.Notes, nil, nil)

	note, err := uc.Create(ctx, "c1", "u1", dto.SaveNoteRequest{Title: "Cliente VIP", Content: "llamar a las 10"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "c1", "u1", dto.SaveNoteRequest{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	own, err := uc.GetByID(ctx, "c1", "u1", note.ID)
	require.NoError(t, err)
	require.NotNil(t, own)

	other, err := uc.GetByID(ctx, "c1", "u2", note.ID)
	require.NoError(t, err)
	assert.Nil(t, other)

	upd, err := uc.Update(ctx, "c1", "u2", note.ID, dto.SaveNoteRequest{Title: "robada"})
	require.NoError(t, err)
	assert.Nil(t, upd)
	assert.ErrorIs(t, uc.Delete(ctx, "c1", "u2", note.ID), domain.ErrNotFound)

	list, err := uc.List(ctx, "c1", "u2", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	list, err = uc.List(ctx, "c1", "u1", 0, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)

	require.NoError(t, uc.Delete(ctx, "c1", "u1", note.ID))
}

func TestProductUseCase(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	uc := usecase.NewProductUseCase(set.Products, nil, nil)

	fibra, err := uc.Create(ctx, "c1", dto.CreateProductRequest{
		Name: "Fibra", ScriptID: "s1", AttendanceTypes: []string{"receptivo"}, PersonTypes: []string{"fisica", "juridica"},
	})
	require.NoError(t, err)
	assert.True(t, fibra.IsActive)

	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{
		Name: "Apagado", AttendanceTypes: []string{"receptivo"}, PersonTypes: []string{"fisica"}, IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{Name: "Ativo", AttendanceTypes: []string{"ativo"}, PersonTypes: []string{"fisica"}})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   dto.CreateProductRequest
		want error
	}{
		{"sin nombre", dto.CreateProductRequest{}, domain.ErrInvalidInput},
		{"tipo desconocido", dto.CreateProductRequest{Name: "X", AttendanceTypes: []string{"mixto"}}, domain.ErrInvalidInput},
		{"archivo no permitido", dto.CreateProductRequest{Name: "X", ScriptFile: "../secreto.json"}, domain.ErrFileNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, "c1", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	available, err := uc.Available(ctx, "c1", "receptivo", "fisica")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, fibra.ID, available[0].ID)

	_, err = uc.Available(ctx, "c1", "receptivo", "otro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	other, err := uc.GetByID(ctx, "c2", fibra.ID)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, uc.Delete(ctx, "c1", fibra.ID))
	assert.ErrorIs(t, uc.Delete(ctx, "c1", fibra.ID), domain.ErrNotFound)
}

func TestTabulationUseCase_ActivaPorDefecto(t *testing.T) {
	ctx := context.Background()
	set := newSet(t)
	uc := usecase.NewTabulationUseCase(set.Tabulations, nil, nil)

	tab, err := uc.Create(ctx, "c1", dto.SaveTabulationRequest{Name: "Venta realizada", Color: "#00ff00"})
	require.NoError(t, err)
	assert.True(t, tab.IsActive)

	_, err = uc.Create(ctx, "c1", dto.SaveTabulationRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, "c1", 500, -1)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 100, list.Page.Limit)
	assert.Equal(t, 0, list.Page.Offset)
}
