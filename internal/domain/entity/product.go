package entity

import "time"

// Tipos de atendimento.
const (
	AttendanceAtivo     = "ativo"
	AttendanceReceptivo = "receptivo"
)

// Tipos de pessoa.
const (
	PersonFisica   = "fisica"
	PersonJuridica = "juridica"
)

// IsValidAttendanceType informa si t es un tipo de atendimento conocido.
func IsValidAttendanceType(t string) bool {
	return t == AttendanceAtivo || t == AttendanceReceptivo
}

// IsValidPersonType informa si t es un tipo de pessoa conocido.
func IsValidPersonType(t string) bool {
	return t == PersonFisica || t == PersonJuridica
}

// Product representa un producto atendido por la central; ScriptID es el paso de entrada de su roteiro.
type Product struct {
	ID              string
	CompanyID       string
	Name            string
	Category        string
	ScriptID        string   // ID del paso inicial (en el namespace del producto)
	ScriptFile      string   // familia de archivo JSON de la que se importan los pasos (opcional)
	AttendanceTypes []string // subconjunto de {ativo, receptivo}
	PersonTypes     []string // subconjunto de {fisica, juridica}
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Supports informa si el producto aplica a la combinación de tipo de atendimento y de pessoa.
func (p *Product) Supports(attendanceType, personType string) bool {
	return contains(p.AttendanceTypes, attendanceType) && contains(p.PersonTypes, personType)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
