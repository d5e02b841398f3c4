package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, company_id, username, email, password_hash, name, role, capabilities, status, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.CompanyID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.Capabilities, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func userArgs(u *entity.User) []any {
	return []any{u.ID, u.CompanyID, u.Username, u.Email, u.PasswordHash, u.Name, u.Role,
		nonNilStrings(u.Capabilities), u.Status, u.CreatedAt, u.UpdatedAt}
}

// Create persiste un usuario. Username repetido en la empresa → domain.ErrUsernameTaken.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, userArgs(u)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return wrap("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario de la empresa.
func (r *UserRepo) GetByID(ctx context.Context, companyID, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get user", err)
	}
	return u, nil
}

// GetByUsername búsqueda sin distinguir mayúsculas dentro de la empresa.
func (r *UserRepo) GetByUsername(ctx context.Context, companyID, username string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 AND lower(username) = lower($2)`, companyID, username))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get user by username", err)
	}
	return u, nil
}

// Update reemplaza los datos del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET username = $3, email = $4, password_hash = $5, name = $6, role = $7,
			capabilities = $8, status = $9, updated_at = $10
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query, u.ID, u.CompanyID, u.Username, u.Email, u.PasswordHash, u.Name, u.Role,
		nonNilStrings(u.Capabilities), u.Status, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return wrap("update user", err)
	}
	return mustAffect(tag)
}

// ListByCompany pagina por fecha de alta.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE company_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// ListAll todos los usuarios.
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list users", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario.
func (r *UserRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrap("delete user", err)
	}
	return mustAffect(tag)
}

// Upsert inserta o reemplaza por ID (migración).
func (r *UserRepo) Upsert(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET company_id = EXCLUDED.company_id, username = EXCLUDED.username,
			email = EXCLUDED.email, password_hash = EXCLUDED.password_hash, name = EXCLUDED.name, role = EXCLUDED.role,
			capabilities = EXCLUDED.capabilities, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, userArgs(u)...); err != nil {
		return wrap("upsert user", err)
	}
	return nil
}
