package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/repository"
)

var (
	_ repository.TabulationRepository = (*TabulationRepo)(nil)
	_ repository.SituationRepository  = (*SituationRepo)(nil)
	_ repository.ChannelRepository    = (*ChannelRepo)(nil)
)

// TabulationRepo tabulaciones sobre PostgreSQL.
type TabulationRepo struct {
	q Querier
}

// NewTabulationRepository construye el adaptador.
func NewTabulationRepository(q Querier) *TabulationRepo {
	return &TabulationRepo{q: q}
}

const tabulationColumns = `id, company_id, name, description, color, is_active, created_at, updated_at`

func scanTabulation(row interface{ Scan(...any) error }) (*entity.Tabulation, error) {
	var t entity.Tabulation
	if err := row.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Description, &t.Color, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una tabulación.
func (r *TabulationRepo) Create(ctx context.Context, t *entity.Tabulation) error {
	_, err := r.q.Exec(ctx, `INSERT INTO tabulations (`+tabulationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.CompanyID, t.Name, t.Description, t.Color, t.IsActive, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return wrap("insert tabulation", err)
	}
	return nil
}

// GetByID obtiene una tabulación de la empresa.
func (r *TabulationRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Tabulation, error) {
	t, err := scanTabulation(r.q.QueryRow(ctx, `SELECT `+tabulationColumns+` FROM tabulations WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get tabulation", err)
	}
	return t, nil
}

// Update reemplaza la tabulación.
func (r *TabulationRepo) Update(ctx context.Context, t *entity.Tabulation) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE tabulations SET name = $3, description = $4, color = $5, is_active = $6, updated_at = $7
		WHERE id = $1 AND company_id = $2`,
		t.ID, t.CompanyID, t.Name, t.Description, t.Color, t.IsActive, t.UpdatedAt)
	if err != nil {
		return wrap("update tabulation", err)
	}
	return mustAffect(tag)
}

// ListByCompany pagina en orden de alta.
func (r *TabulationRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Tabulation, error) {
	return r.list(ctx, `SELECT `+tabulationColumns+` FROM tabulations WHERE company_id = $1 ORDER BY position LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// ListAll todas las tabulaciones.
func (r *TabulationRepo) ListAll(ctx context.Context) ([]*entity.Tabulation, error) {
	return r.list(ctx, `SELECT `+tabulationColumns+` FROM tabulations ORDER BY position`)
}

func (r *TabulationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Tabulation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list tabulations", err)
	}
	defer rows.Close()
	list := make([]*entity.Tabulation, 0)
	for rows.Next() {
		t, err := scanTabulation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tabulation: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete elimina una tabulación.
func (r *TabulationRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tabulations WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrap("delete tabulation", err)
	}
	return mustAffect(tag)
}

// Upsert inserta o reemplaza por ID.
func (r *TabulationRepo) Upsert(ctx context.Context, t *entity.Tabulation) error {
	_, err := r.q.Exec(ctx, `INSERT INTO tabulations (`+tabulationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET company_id = EXCLUDED.company_id, name = EXCLUDED.name, description = EXCLUDED.description,
			color = EXCLUDED.color, is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at`,
		t.ID, t.CompanyID, t.Name, t.Description, t.Color, t.IsActive, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return wrap("upsert tabulation", err)
	}
	return nil
}

// SituationRepo situaciones sobre PostgreSQL.
type SituationRepo struct {
	q Querier
}

// NewSituationRepository construye el adaptador.
func NewSituationRepository(q Querier) *SituationRepo {
	return &SituationRepo{q: q}
}

const situationColumns = `id, company_id, name, description, is_active, created_at, updated_at`

func scanSituation(row interface{ Scan(...any) error }) (*entity.Situation, error) {
	var s entity.Situation
	if err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una situación.
func (r *SituationRepo) Create(ctx context.Context, s *entity.Situation) error {
	_, err := r.q.Exec(ctx, `INSERT INTO situations (`+situationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.CompanyID, s.Name, s.Description, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return wrap("insert situation", err)
	}
	return nil
}

// GetByID obtiene una situación de la empresa.
func (r *SituationRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Situation, error) {
	s, err := scanSituation(r.q.QueryRow(ctx, `SELECT `+situationColumns+` FROM situations WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get situation", err)
	}
	return s, nil
}

// Update reemplaza la situación.
func (r *SituationRepo) Update(ctx context.Context, s *entity.Situation) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE situations SET name = $3, description = $4, is_active = $5, updated_at = $6
		WHERE id = $1 AND company_id = $2`,
		s.ID, s.CompanyID, s.Name, s.Description, s.IsActive, s.UpdatedAt)
	if err != nil {
		return wrap("update situation", err)
	}
	return mustAffect(tag)
}

// ListByCompany pagina en orden de alta.
func (r *SituationRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Situation, error) {
	return r.list(ctx, `SELECT `+situationColumns+` FROM situations WHERE company_id = $1 ORDER BY position LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// ListAll todas las situaciones.
func (r *SituationRepo) ListAll(ctx context.Context) ([]*entity.Situation, error) {
	return r.list(ctx, `SELECT `+situationColumns+` FROM situations ORDER BY position`)
}

func (r *SituationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Situation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list situations", err)
	}
	defer rows.Close()
	list := make([]*entity.Situation, 0)
	for rows.Next() {
		s, err := scanSituation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan situation: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina una situación.
func (r *SituationRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM situations WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrap("delete situation", err)
	}
	return mustAffect(tag)
}

// Upsert inserta o reemplaza por ID.
func (r *SituationRepo) Upsert(ctx context.Context, s *entity.Situation) error {
	_, err := r.q.Exec(ctx, `INSERT INTO situations (`+situationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET company_id = EXCLUDED.company_id, name = EXCLUDED.name,
			description = EXCLUDED.description, is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at`,
		s.ID, s.CompanyID, s.Name, s.Description, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return wrap("upsert situation", err)
	}
	return nil
}

// ChannelRepo canales sobre PostgreSQL.
type ChannelRepo struct {
	q Querier
}

// NewChannelRepository construye el adaptador.
func NewChannelRepository(q Querier) *ChannelRepo {
	return &ChannelRepo{q: q}
}

const channelColumns = `id, company_id, name, contact, description, is_active, created_at, updated_at`

func scanChannel(row interface{ Scan(...any) error }) (*entity.Channel, error) {
	var c entity.Channel
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Contact, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un canal.
func (r *ChannelRepo) Create(ctx context.Context, c *entity.Channel) error {
	_, err := r.q.Exec(ctx, `INSERT INTO channels (`+channelColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.CompanyID, c.Name, c.Contact, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrap("insert channel", err)
	}
	return nil
}

// GetByID obtiene un canal de la empresa.
func (r *ChannelRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Channel, error) {
	c, err := scanChannel(r.q.QueryRow(ctx, `SELECT `+channelColumns+` FROM channels WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get channel", err)
	}
	return c, nil
}

// Update reemplaza el canal.
func (r *ChannelRepo) Update(ctx context.Context, c *entity.Channel) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE channels SET name = $3, contact = $4, description = $5, is_active = $6, updated_at = $7
		WHERE id = $1 AND company_id = $2`,
		c.ID, c.CompanyID, c.Name, c.Contact, c.Description, c.IsActive, c.UpdatedAt)
	if err != nil {
		return wrap("update channel", err)
	}
	return mustAffect(tag)
}

// ListByCompany pagina en orden de alta.
func (r *ChannelRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Channel, error) {
	return r.list(ctx, `SELECT `+channelColumns+` FROM channels WHERE company_id = $1 ORDER BY position LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// ListAll todos los canales.
func (r *ChannelRepo) ListAll(ctx context.Context) ([]*entity.Channel, error) {
	return r.list(ctx, `SELECT `+channelColumns+` FROM channels ORDER BY position`)
}

func (r *ChannelRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Channel, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list channels", err)
	}
	defer rows.Close()
	list := make([]*entity.Channel, 0)
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina un canal.
func (r *ChannelRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM channels WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrap("delete channel", err)
	}
	return mustAffect(tag)
}

// Upsert inserta o reemplaza por ID.
func (r *ChannelRepo) Upsert(ctx context.Context, c *entity.Channel) error {
	_, err := r.q.Exec(ctx, `INSERT INTO channels (`+channelColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET company_id = EXCLUDED.company_id, name = EXCLUDED.name, contact = EXCLUDED.contact,
			description = EXCLUDED.description, is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at`,
		c.ID, c.CompanyID, c.Name, c.Contact, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrap("upsert channel", err)
	}
	return nil
}
