package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
// El orden del almacén es la columna position (orden de alta).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, name, category, script_id, script_file, attendance_types, person_types, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Category, &p.ScriptID, &p.ScriptFile,
		&p.AttendanceTypes, &p.PersonTypes, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func productArgs(p *entity.Product) []any {
	return []any{p.ID, p.CompanyID, p.Name, p.Category, p.ScriptID, p.ScriptFile,
		nonNilStrings(p.AttendanceTypes), nonNilStrings(p.PersonTypes), p.IsActive, p.CreatedAt, p.UpdatedAt}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.q.Exec(ctx, query, productArgs(p)...); err != nil {
		return wrap("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get product", err)
	}
	return p, nil
}

// Update actualiza un producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $3, category = $4, script_id = $5, script_file = $6,
			attendance_types = $7, person_types = $8, is_active = $9, updated_at = $10
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query, p.ID, p.CompanyID, p.Name, p.Category, p.ScriptID, p.ScriptFile,
		nonNilStrings(p.AttendanceTypes), nonNilStrings(p.PersonTypes), p.IsActive, p.UpdatedAt)
	if err != nil {
		return wrap("update product", err)
	}
	return mustAffect(tag)
}

// ListByCompany lista productos por empresa con paginación.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY position LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// ListActive productos activos de la empresa en orden del almacén.
func (r *ProductRepo) ListActive(ctx context.Context, companyID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND is_active ORDER BY position`, companyID)
}

// ListByScriptFile productos de cualquier empresa ligados a la familia.
func (r *ProductRepo) ListByScriptFile(ctx context.Context, scriptFile string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE script_file = $1 ORDER BY position`, scriptFile)
}

// ListAll todos los productos.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY position`)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto. Sus pasos no se borran.
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrap("delete product", err)
	}
	return mustAffect(tag)
}

// Upsert inserta o reemplaza por ID (migración).
func (r *ProductRepo) Upsert(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET company_id = EXCLUDED.company_id, name = EXCLUDED.name, category = EXCLUDED.category,
			script_id = EXCLUDED.script_id, script_file = EXCLUDED.script_file, attendance_types = EXCLUDED.attendance_types,
			person_types = EXCLUDED.person_types, is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, productArgs(p)...); err != nil {
		return wrap("upsert product", err)
	}
	return nil
}
