package postgres

import "github.com/jhoicas/roteiro-api/internal/domain/repository"

// NewSet construye todos los repositorios sobre el mismo pool o transacción.
func NewSet(q Querier) repository.Set {
	return repository.Set{
		Companies:   NewCompanyRepository(q),
		Users:       NewUserRepository(q),
		Products:    NewProductRepository(q),
		Steps:       NewScriptStepRepository(q),
		Tabulations: NewTabulationRepository(q),
		Situations:  NewSituationRepository(q),
		Channels:    NewChannelRepository(q),
		Notes:       NewNoteRepository(q),
	}
}
