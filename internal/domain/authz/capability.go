// Package authz define las capacidades tipadas de la aplicación y la política
// por defecto de cada rol. Reemplaza los mapas de permisos sueltos: un nombre
// desconocido es un error, nunca un "permitido" implícito.
package authz

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// Capability una acción autorizable.
type Capability uint8

const (
	Navigate Capability = iota
	ManageNotes
	ManageProducts
	ManageScripts
	ManageTabulations
	ManageSituations
	ManageChannels
	ManageOperators
	ManageSettings
	RunMigration
	ExportScripts

	capabilityCount
)

var capabilityNames = [capabilityCount]string{
	Navigate:          "navigate",
	ManageNotes:       "notes",
	ManageProducts:    "manage_products",
	ManageScripts:     "manage_scripts",
	ManageTabulations: "manage_tabulations",
	ManageSituations:  "manage_situations",
	ManageChannels:    "manage_channels",
	ManageOperators:   "manage_operators",
	ManageSettings:    "manage_settings",
	RunMigration:      "run_migration",
	ExportScripts:     "export_scripts",
}

// String devuelve el nombre estable de la capacidad (el que viaja en el JWT).
func (c Capability) String() string {
	if c >= capabilityCount {
		return fmt.Sprintf("capability(%d)", uint8(c))
	}
	return capabilityNames[c]
}

// ParseCapability convierte un nombre en Capability.
func ParseCapability(name string) (Capability, error) {
	for i, n := range capabilityNames {
		if n == name {
			return Capability(i), nil
		}
	}
	return 0, fmt.Errorf("%w: capacidad desconocida %q", domain.ErrInvalidInput, name)
}

// Set conjunto de capacidades (bitset).
type Set uint32

// NewSet construye un Set con las capacidades dadas.
func NewSet(caps ...Capability) Set {
	var s Set
	for _, c := range caps {
		s = s.With(c)
	}
	return s
}

// All devuelve el Set con todas las capacidades.
func All() Set {
	return Set(1<<capabilityCount - 1)
}

// With devuelve una copia de s que incluye c.
func (s Set) With(c Capability) Set {
	if c >= capabilityCount {
		return s
	}
	return s | 1<<c
}

// Has informa si s incluye c.
func (s Set) Has(c Capability) bool {
	return c < capabilityCount && s&(1<<c) != 0
}

// Len cantidad de capacidades del conjunto.
func (s Set) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Names devuelve los nombres ordenados alfabéticamente.
func (s Set) Names() []string {
	out := make([]string, 0, s.Len())
	for c := Capability(0); c < capabilityCount; c++ {
		if s.Has(c) {
			out = append(out, c.String())
		}
	}
	sort.Strings(out)
	return out
}

// ParseSet convierte una lista de nombres en Set; cualquier nombre desconocido es error.
func ParseSet(names []string) (Set, error) {
	var s Set
	for _, n := range names {
		c, err := ParseCapability(n)
		if err != nil {
			return 0, err
		}
		s = s.With(c)
	}
	return s, nil
}

// DefaultFor política por defecto de cada rol. Un rol desconocido no recibe capacidades.
func DefaultFor(role string) Set {
	switch role {
	case entity.RoleAdmin:
		return All()
	case entity.RoleSupervisor:
		return NewSet(Navigate, ManageNotes, ManageProducts, ManageScripts,
			ManageTabulations, ManageSituations, ManageChannels, ExportScripts)
	case entity.RoleOperador:
		return NewSet(Navigate, ManageNotes)
	default:
		return 0
	}
}

// Effective capacidades efectivas del usuario: el override explícito si existe,
// si no la política del rol.
func Effective(u *entity.User) (Set, error) {
	if u == nil {
		return 0, nil
	}
	if len(u.Capabilities) > 0 {
		return ParseSet(u.Capabilities)
	}
	return DefaultFor(u.Role), nil
}
