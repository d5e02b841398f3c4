package event

import "time"

// Colecciones observables.
const (
	CollectionCompanies   = "companies"
	CollectionUsers       = "users"
	CollectionProducts    = "products"
	CollectionSteps       = "script_steps"
	CollectionTabulations = "tabulations"
	CollectionSituations  = "situations"
	CollectionChannels    = "channels"
	CollectionNotes       = "notes"
	CollectionSettings    = "settings"
)

// Acciones.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

// Event aviso de que una colección cambió. Es una señal de invalidación de caché:
// quien la recibe recarga la colección afectada; gana la última escritura.
type Event struct {
	Collection string    `json:"collection"`
	CompanyID  string    `json:"company_id,omitempty"`
	ProductID  string    `json:"product_id,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	Action     string    `json:"action"`
	At         time.Time `json:"at"`
	Origin     string    `json:"origin,omitempty"` // instancia que publicó; evita re-difundir ecos
}
