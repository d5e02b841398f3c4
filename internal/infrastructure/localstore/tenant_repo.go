package localstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/roteiro-api/internal/domain"
)

type record[E any] interface {
	recordID() string
	recordCompany() string
	entity() *E
}

// tenantRepo CRUD genérico para colecciones con ID propio y CompanyID.
type tenantRepo[R record[E], E any] struct {
	s    *Store
	key  string
	from func(*E) R
}

// Create agrega el registro; ID repetido → domain.ErrDuplicate.
func (r *tenantRepo[R, E]) Create(ctx context.Context, e *E) error {
	rec := r.from(e)
	return update(ctx, r.s, r.key, func(items []R) ([]R, error) {
		if indexOf(items, rec.recordID()) >= 0 {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrDuplicate, r.key, rec.recordID())
		}
		return append(items, rec), nil
	})
}

// GetByID devuelve (nil, nil) si no existe o pertenece a otra empresa.
func (r *tenantRepo[R, E]) GetByID(ctx context.Context, companyID, id string) (*E, error) {
	items, err := load[R](ctx, r.s, r.key)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 || items[i].recordCompany() != companyID {
		return nil, nil
	}
	return items[i].entity(), nil
}

// Update reemplaza el registro en su posición; conserva el orden de la colección.
func (r *tenantRepo[R, E]) Update(ctx context.Context, e *E) error {
	rec := r.from(e)
	return update(ctx, r.s, r.key, func(items []R) ([]R, error) {
		i := indexOf(items, rec.recordID())
		if i < 0 || items[i].recordCompany() != rec.recordCompany() {
			return nil, domain.ErrNotFound
		}
		items[i] = rec
		return items, nil
	})
}

// ListByCompany pagina en orden de la colección.
func (r *tenantRepo[R, E]) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*E, error) {
	return r.filter(ctx, limit, offset, func(rec R) bool { return rec.recordCompany() == companyID })
}

// Delete borra el registro; domain.ErrNotFound si no existe.
func (r *tenantRepo[R, E]) Delete(ctx context.Context, companyID, id string) error {
	return update(ctx, r.s, r.key, func(items []R) ([]R, error) {
		i := indexOf(items, id)
		if i < 0 || items[i].recordCompany() != companyID {
			return nil, domain.ErrNotFound
		}
		return append(items[:i], items[i+1:]...), nil
	})
}

// ListAll devuelve la colección completa (todas las empresas).
func (r *tenantRepo[R, E]) ListAll(ctx context.Context) ([]*E, error) {
	return r.filter(ctx, 0, 0, func(R) bool { return true })
}

// Upsert reemplaza por ID o agrega al final.
func (r *tenantRepo[R, E]) Upsert(ctx context.Context, e *E) error {
	rec := r.from(e)
	return update(ctx, r.s, r.key, func(items []R) ([]R, error) {
		if i := indexOf(items, rec.recordID()); i >= 0 {
			items[i] = rec
			return items, nil
		}
		return append(items, rec), nil
	})
}

func (r *tenantRepo[R, E]) filter(ctx context.Context, limit, offset int, keep func(R) bool) ([]*E, error) {
	items, err := load[R](ctx, r.s, r.key)
	if err != nil {
		return nil, err
	}
	matched := make([]R, 0, len(items))
	for _, it := range items {
		if keep(it) {
			matched = append(matched, it)
		}
	}
	matched = page(matched, limit, offset)
	out := make([]*E, 0, len(matched))
	for _, it := range matched {
		out = append(out, it.entity())
	}
	return out, nil
}

func indexOf[R interface{ recordID() string }](items []R, id string) int {
	for i, it := range items {
		if it.recordID() == id {
			return i
		}
	}
	return -1
}
