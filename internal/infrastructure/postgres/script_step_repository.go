package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
)

var _ repository.ScriptStepRepository = (*ScriptStepRepo)(nil)

// ScriptStepRepo pasos del roteiro; botones y tabulaciones se guardan como JSONB.
type ScriptStepRepo struct {
	q Querier
}

// NewScriptStepRepository construye el adaptador. Pasar pool o tx (Querier).
func NewScriptStepRepository(q Querier) *ScriptStepRepo {
	return &ScriptStepRepo{q: q}
}

const stepColumns = `product_id, id, company_id, title, content, buttons, tabulations, updated_at`

func scanStep(row interface{ Scan(...any) error }) (*entity.ScriptStep, error) {
	var (
		s             entity.ScriptStep
		buttons, tabs []byte
	)
	if err := row.Scan(&s.ProductID, &s.ID, &s.CompanyID, &s.Title, &s.Content, &buttons, &tabs, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(buttons, &s.Buttons); err != nil {
		return nil, fmt.Errorf("botones del paso %s: %w", s.ID, err)
	}
	if err := json.Unmarshal(tabs, &s.Tabulations); err != nil {
		return nil, fmt.Errorf("tabulaciones del paso %s: %w", s.ID, err)
	}
	return &s, nil
}

func stepArgs(s *entity.ScriptStep) ([]any, error) {
	buttons := s.Buttons
	if buttons == nil {
		buttons = []entity.Button{}
	}
	tabs := s.Tabulations
	if tabs == nil {
		tabs = []entity.StepTabulation{}
	}
	b, err := json.Marshal(buttons)
	if err != nil {
		return nil, err
	}
	t, err := json.Marshal(tabs)
	if err != nil {
		return nil, err
	}
	return []any{s.ProductID, s.ID, s.CompanyID, s.Title, s.Content, string(b), string(t), s.UpdatedAt}, nil
}

// Create persiste un paso nuevo.
func (r *ScriptStepRepo) Create(ctx context.Context, s *entity.ScriptStep) error {
	args, err := stepArgs(s)
	if err != nil {
		return err
	}
	query := `INSERT INTO script_steps (` + stepColumns + `) VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8)`
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return wrap("insert script step", err)
	}
	return nil
}

// Get devuelve (nil, nil) si el paso no existe.
func (r *ScriptStepRepo) Get(ctx context.Context, productID, stepID string) (*entity.ScriptStep, error) {
	s, err := scanStep(r.q.QueryRow(ctx, `SELECT `+stepColumns+` FROM script_steps WHERE product_id = $1 AND id = $2`, productID, stepID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get script step", err)
	}
	return s, nil
}

// Update reemplaza el paso; conserva su posición.
func (r *ScriptStepRepo) Update(ctx context.Context, s *entity.ScriptStep) error {
	args, err := stepArgs(s)
	if err != nil {
		return err
	}
	query := `
		UPDATE script_steps SET company_id = $3, title = $4, content = $5, buttons = $6::jsonb, tabulations = $7::jsonb, updated_at = $8
		WHERE product_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return wrap("update script step", err)
	}
	return mustAffect(tag)
}

// ListByProduct pasos del producto en orden del almacén.
func (r *ScriptStepRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ScriptStep, error) {
	return r.list(ctx, `SELECT `+stepColumns+` FROM script_steps WHERE product_id = $1 ORDER BY position`, productID)
}

// ListAll todos los pasos.
func (r *ScriptStepRepo) ListAll(ctx context.Context) ([]*entity.ScriptStep, error) {
	return r.list(ctx, `SELECT `+stepColumns+` FROM script_steps ORDER BY product_id, position`)
}

func (r *ScriptStepRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ScriptStep, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list script steps", err)
	}
	defer rows.Close()
	list := make([]*entity.ScriptStep, 0)
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("scan script step: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina un paso.
func (r *ScriptStepRepo) Delete(ctx context.Context, productID, stepID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM script_steps WHERE product_id = $1 AND id = $2`, productID, stepID)
	if err != nil {
		return wrap("delete script step", err)
	}
	return mustAffect(tag)
}

// Upsert inserta o reemplaza por (product_id, id).
func (r *ScriptStepRepo) Upsert(ctx context.Context, s *entity.ScriptStep) error {
	args, err := stepArgs(s)
	if err != nil {
		return err
	}
	query := `INSERT INTO script_steps (` + stepColumns + `) VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8)
		ON CONFLICT (product_id, id) DO UPDATE SET company_id = EXCLUDED.company_id, title = EXCLUDED.title,
			content = EXCLUDED.content, buttons = EXCLUDED.buttons, tabulations = EXCLUDED.tabulations, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return wrap("upsert script step", err)
	}
	return nil
}
