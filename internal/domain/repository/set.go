package repository

// Set agrupa todos los repositorios de un backend (remoto o local).
// Permite construir los casos de uso sin conocer el driver y alimenta la migración.
type Set struct {
	Companies   CompanyRepository
	Users       UserRepository
	Products    ProductRepository
	Steps       ScriptStepRepository
	Tabulations TabulationRepository
	Situations  SituationRepository
	Channels    ChannelRepository
	Notes       NoteRepository
}
