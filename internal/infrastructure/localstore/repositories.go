package localstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
)

// NewSet construye todos los repositorios sobre el mismo Store.
func NewSet(s *Store) repository.Set {
	return repository.Set{
		Companies:   &CompanyRepo{s: s},
		Users:       &UserRepo{tenantRepo[userRecord, entity.User]{s: s, key: KeyUsers, from: fromUser}},
		Products:    &ProductRepo{tenantRepo[productRecord, entity.Product]{s: s, key: KeyProducts, from: fromProduct}},
		Steps:       &StepRepo{s: s},
		Tabulations: &TabulationRepo{tenantRepo[tabulationRecord, entity.Tabulation]{s: s, key: KeyTabulations, from: fromTabulation}},
		Situations:  &SituationRepo{tenantRepo[situationRecord, entity.Situation]{s: s, key: KeySituations, from: fromSituation}},
		Channels:    &ChannelRepo{tenantRepo[channelRecord, entity.Channel]{s: s, key: KeyChannels, from: fromChannel}},
		Notes:       &NoteRepo{tenantRepo[noteRecord, entity.Note]{s: s, key: KeyNotes, from: fromNote}},
	}
}

var (
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.ProductRepository    = (*ProductRepo)(nil)
	_ repository.ScriptStepRepository = (*StepRepo)(nil)
	_ repository.TabulationRepository = (*TabulationRepo)(nil)
	_ repository.SituationRepository  = (*SituationRepo)(nil)
	_ repository.ChannelRepository    = (*ChannelRepo)(nil)
	_ repository.NoteRepository       = (*NoteRepo)(nil)
)

// TabulationRepo colección roteiro:tabulations.
type TabulationRepo struct {
	tenantRepo[tabulationRecord, entity.Tabulation]
}

// SituationRepo colección roteiro:situations.
type SituationRepo struct {
	tenantRepo[situationRecord, entity.Situation]
}

// ChannelRepo colección roteiro:channels.
type ChannelRepo struct {
	tenantRepo[channelRecord, entity.Channel]
}

// NoteRepo colección roteiro:notes.
type NoteRepo struct {
	tenantRepo[noteRecord, entity.Note]
}

// ListByUser notas del autor en orden de la colección.
func (r *NoteRepo) ListByUser(ctx context.Context, companyID, userID string, limit, offset int) ([]*entity.Note, error) {
	return r.filter(ctx, limit, offset, func(n noteRecord) bool { return n.CompanyID == companyID && n.UserID == userID })
}

// UserRepo colección roteiro:users.
type UserRepo struct {
	tenantRepo[userRecord, entity.User]
}

// Create agrega el usuario; username repetido en la empresa → domain.ErrUsernameTaken.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	rec := fromUser(u)
	return update(ctx, r.s, r.key, func(items []userRecord) ([]userRecord, error) {
		for _, it := range items {
			if it.ID == rec.ID {
				return nil, fmt.Errorf("%w: usuario %s", domain.ErrDuplicate, rec.ID)
			}
			if it.CompanyID == rec.CompanyID && strings.EqualFold(it.Username, rec.Username) {
				return nil, domain.ErrUsernameTaken
			}
		}
		return append(items, rec), nil
	})
}

// GetByUsername búsqueda sin distinguir mayúsculas dentro de la empresa.
func (r *UserRepo) GetByUsername(ctx context.Context, companyID, username string) (*entity.User, error) {
	list, err := r.filter(ctx, 1, 0, func(u userRecord) bool {
		return u.CompanyID == companyID && strings.EqualFold(u.Username, username)
	})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// ProductRepo colección roteiro:products.
type ProductRepo struct {
	tenantRepo[productRecord, entity.Product]
}

// ListActive productos activos de la empresa en orden de la colección.
func (r *ProductRepo) ListActive(ctx context.Context, companyID string) ([]*entity.Product, error) {
	return r.filter(ctx, 0, 0, func(p productRecord) bool { return p.CompanyID == companyID && p.IsActive })
}

// ListByScriptFile productos ligados a la familia (todas las empresas).
func (r *ProductRepo) ListByScriptFile(ctx context.Context, scriptFile string) ([]*entity.Product, error) {
	return r.filter(ctx, 0, 0, func(p productRecord) bool { return p.ScriptFile == scriptFile })
}

// StepRepo colección roteiro:scriptSteps; la clave de un paso es (productId, id).
type StepRepo struct {
	s *Store
}

func stepIndex(items []stepRecord, productID, stepID string) int {
	for i, it := range items {
		if it.ProductID == productID && it.ID == stepID {
			return i
		}
	}
	return -1
}

// Create agrega el paso; (productId, id) repetido → domain.ErrDuplicate.
func (r *StepRepo) Create(ctx context.Context, step *entity.ScriptStep) error {
	rec := fromStep(step)
	return update(ctx, r.s, KeySteps, func(items []stepRecord) ([]stepRecord, error) {
		if stepIndex(items, rec.ProductID, rec.ID) >= 0 {
			return nil, fmt.Errorf("%w: paso %s/%s", domain.ErrDuplicate, rec.ProductID, rec.ID)
		}
		return append(items, rec), nil
	})
}

// Get devuelve (nil, nil) si no existe.
func (r *StepRepo) Get(ctx context.Context, productID, stepID string) (*entity.ScriptStep, error) {
	items, err := load[stepRecord](ctx, r.s, KeySteps)
	if err != nil {
		return nil, err
	}
	if i := stepIndex(items, productID, stepID); i >= 0 {
		return items[i].entity(), nil
	}
	return nil, nil
}

// Update reemplaza el paso en su posición.
func (r *StepRepo) Update(ctx context.Context, step *entity.ScriptStep) error {
	rec := fromStep(step)
	return update(ctx, r.s, KeySteps, func(items []stepRecord) ([]stepRecord, error) {
		i := stepIndex(items, rec.ProductID, rec.ID)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		items[i] = rec
		return items, nil
	})
}

// ListByProduct pasos del producto en orden de la colección.
func (r *StepRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ScriptStep, error) {
	items, err := load[stepRecord](ctx, r.s, KeySteps)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.ScriptStep, 0)
	for _, it := range items {
		if it.ProductID == productID {
			out = append(out, it.entity())
		}
	}
	return out, nil
}

// Delete borra el paso; domain.ErrNotFound si no existe.
func (r *StepRepo) Delete(ctx context.Context, productID, stepID string) error {
	return update(ctx, r.s, KeySteps, func(items []stepRecord) ([]stepRecord, error) {
		i := stepIndex(items, productID, stepID)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		return append(items[:i], items[i+1:]...), nil
	})
}

// ListAll todos los pasos.
func (r *StepRepo) ListAll(ctx context.Context) ([]*entity.ScriptStep, error) {
	items, err := load[stepRecord](ctx, r.s, KeySteps)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.ScriptStep, 0, len(items))
	for _, it := range items {
		out = append(out, it.entity())
	}
	return out, nil
}

// Upsert reemplaza por (productId, id) o agrega al final.
func (r *StepRepo) Upsert(ctx context.Context, step *entity.ScriptStep) error {
	rec := fromStep(step)
	return update(ctx, r.s, KeySteps, func(items []stepRecord) ([]stepRecord, error) {
		if i := stepIndex(items, rec.ProductID, rec.ID); i >= 0 {
			items[i] = rec
			return items, nil
		}
		return append(items, rec), nil
	})
}

// CompanyRepo colecciones roteiro:companies y roteiro:companyModules.
type CompanyRepo struct {
	s *Store
}

// Create agrega la empresa; NIT o ID repetido → domain.ErrDuplicate.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	rec := fromCompany(c)
	return update(ctx, r.s, KeyCompanies, func(items []companyRecord) ([]companyRecord, error) {
		for _, it := range items {
			if it.ID == rec.ID || it.NIT == rec.NIT {
				return nil, domain.ErrDuplicate
			}
		}
		return append(items, rec), nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.find(ctx, func(c companyRecord) bool { return c.ID == id })
}

// GetByNIT devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByNIT(ctx context.Context, nit string) (*entity.Company, error) {
	return r.find(ctx, func(c companyRecord) bool { return c.NIT == nit })
}

func (r *CompanyRepo) find(ctx context.Context, match func(companyRecord) bool) (*entity.Company, error) {
	items, err := load[companyRecord](ctx, r.s, KeyCompanies)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if match(it) {
			return it.entity(), nil
		}
	}
	return nil, nil
}

// Update reemplaza la empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	rec := fromCompany(c)
	return update(ctx, r.s, KeyCompanies, func(items []companyRecord) ([]companyRecord, error) {
		i := indexOf(items, rec.ID)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		items[i] = rec
		return items, nil
	})
}

// List pagina en orden de la colección.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	items, err := load[companyRecord](ctx, r.s, KeyCompanies)
	if err != nil {
		return nil, err
	}
	items = page(items, limit, offset)
	out := make([]*entity.Company, 0, len(items))
	for _, it := range items {
		out = append(out, it.entity())
	}
	return out, nil
}

// Delete borra la empresa; sus módulos también.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	err := update(ctx, r.s, KeyCompanies, func(items []companyRecord) ([]companyRecord, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		return append(items[:i], items[i+1:]...), nil
	})
	if err != nil {
		return err
	}
	return update(ctx, r.s, KeyModules, func(items []moduleRecord) ([]moduleRecord, error) {
		kept := items[:0]
		for _, m := range items {
			if m.CompanyID != id {
				kept = append(kept, m)
			}
		}
		return kept, nil
	})
}

// ListModules módulos registrados de la empresa.
func (r *CompanyRepo) ListModules(ctx context.Context, companyID string) ([]*entity.CompanyModule, error) {
	items, err := load[moduleRecord](ctx, r.s, KeyModules)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.CompanyModule, 0)
	for _, it := range items {
		if it.CompanyID == companyID {
			out = append(out, it.entity())
		}
	}
	return out, nil
}

// SetModule crea o reemplaza la activación (companyId, moduleName).
func (r *CompanyRepo) SetModule(ctx context.Context, m *entity.CompanyModule) error {
	rec := fromModule(m)
	return update(ctx, r.s, KeyModules, func(items []moduleRecord) ([]moduleRecord, error) {
		for i, it := range items {
			if it.CompanyID == rec.CompanyID && it.ModuleName == rec.ModuleName {
				items[i] = rec
				return items, nil
			}
		}
		return append(items, rec), nil
	})
}

// HasActiveModule activo y sin vencer.
func (r *CompanyRepo) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	mods, err := r.ListModules(ctx, companyID)
	if err != nil {
		return false, err
	}
	now := time.Now()
	for _, m := range mods {
		if m.ModuleName == moduleName {
			return m.Active(now), nil
		}
	}
	return false, nil
}

// ListAll todas las empresas.
func (r *CompanyRepo) ListAll(ctx context.Context) ([]*entity.Company, error) {
	return r.List(ctx, 0, 0)
}

// Upsert reemplaza por ID o agrega al final.
func (r *CompanyRepo) Upsert(ctx context.Context, c *entity.Company) error {
	rec := fromCompany(c)
	return update(ctx, r.s, KeyCompanies, func(items []companyRecord) ([]companyRecord, error) {
		if i := indexOf(items, rec.ID); i >= 0 {
			items[i] = rec
			return items, nil
		}
		return append(items, rec), nil
	})
}

// ListAllModules activaciones de todas las empresas.
func (r *CompanyRepo) ListAllModules(ctx context.Context) ([]*entity.CompanyModule, error) {
	items, err := load[moduleRecord](ctx, r.s, KeyModules)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.CompanyModule, 0, len(items))
	for _, it := range items {
		out = append(out, it.entity())
	}
	return out, nil
}
