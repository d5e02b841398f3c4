package entity

import "time"

// Company representa una organización/tenant del sistema (central de atención).
type Company struct {
	ID        string
	Name      string
	NIT       string // documento fiscal (CNPJ/NIT), único
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos activables por empresa; son la "configuración" del tenant.
const (
	ModuleScripts   = "scripts"
	ModuleNotes     = "notes"
	ModuleMigration = "migration"
	ModulePDFExport = "pdf_export"
)

// Modules lista los módulos conocidos en orden de presentación.
var Modules = []string{ModuleScripts, ModuleNotes, ModuleMigration, ModulePDFExport}

// IsKnownModule informa si name es un módulo válido.
func IsKnownModule(name string) bool {
	for _, m := range Modules {
		if m == name {
			return true
		}
	}
	return false
}

// CompanyModule representa la activación de un módulo en una empresa.
type CompanyModule struct {
	CompanyID   string
	ModuleName  string
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	UpdatedAt   time.Time
}

// Active informa si el módulo está activo y sin vencer en el instante now.
func (m CompanyModule) Active(now time.Time) bool {
	if !m.IsActive {
		return false
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(now)
}
