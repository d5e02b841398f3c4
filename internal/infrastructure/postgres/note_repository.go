package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo notas personales sobre PostgreSQL.
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador.
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

const noteColumns = `id, company_id, user_id, title, content, created_at, updated_at`

func scanNote(row interface{ Scan(...any) error }) (*entity.Note, error) {
	var n entity.Note
	if err := row.Scan(&n.ID, &n.CompanyID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste una nota.
func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	_, err := r.q.Exec(ctx, `INSERT INTO notes (`+noteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.CompanyID, n.UserID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return wrap("insert note", err)
	}
	return nil
}

// GetByID obtiene una nota de la empresa (el caso de uso verifica el autor).
func (r *NoteRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Note, error) {
	n, err := scanNote(r.q.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get note", err)
	}
	return n, nil
}

// Update reemplaza título y contenido.
func (r *NoteRepo) Update(ctx context.Context, n *entity.Note) error {
	tag, err := r.q.Exec(ctx, `UPDATE notes SET title = $3, content = $4, updated_at = $5 WHERE id = $1 AND company_id = $2`,
		n.ID, n.CompanyID, n.Title, n.Content, n.UpdatedAt)
	if err != nil {
		return wrap("update note", err)
	}
	return mustAffect(tag)
}

// ListByUser notas del autor en orden de alta.
func (r *NoteRepo) ListByUser(ctx context.Context, companyID, userID string, limit, offset int) ([]*entity.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes WHERE company_id = $1 AND user_id = $2 ORDER BY position LIMIT $3 OFFSET $4`,
		companyID, userID, limit, offset)
}

// ListAll todas las notas.
func (r *NoteRepo) ListAll(ctx context.Context) ([]*entity.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY position`)
}

func (r *NoteRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Note, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list notes", err)
	}
	defer rows.Close()
	list := make([]*entity.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Delete elimina una nota.
func (r *NoteRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM notes WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrap("delete note", err)
	}
	return mustAffect(tag)
}

// Upsert inserta o reemplaza por ID.
func (r *NoteRepo) Upsert(ctx context.Context, n *entity.Note) error {
	_, err := r.q.Exec(ctx, `INSERT INTO notes (`+noteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET company_id = EXCLUDED.company_id, user_id = EXCLUDED.user_id,
			title = EXCLUDED.title, content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`,
		n.ID, n.CompanyID, n.UserID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return wrap("upsert note", err)
	}
	return nil
}
