package accesspolicies

import (
	"errors"

	"github.com/google/uuid"
)

// ScopeKind es el alcance del permiso (TipoPermiso).
// @Enum PROFESIONAL_ESPECIFICO, POR_ESPECIALIDAD, POR_CLINICA
type ScopeKind string

const (
	ScopeProfessional ScopeKind = "PROFESIONAL_ESPECIFICO"
	ScopeSpecialty    ScopeKind = "POR_ESPECIALIDAD"
	ScopeClinic       ScopeKind = "POR_CLINICA"
)

var ErrInvalidScope = errors.New("invalid scope")

// Scope es la variante etiquetada del alcance. Según Kind está poblado
// exactamente un conjunto de campos:
//   - PROFESIONAL_ESPECIFICO => ProfessionalID
//   - POR_ESPECIALIDAD       => ClinicID + Specialty
//   - POR_CLINICA            => ClinicID
// Validate garantiza el invariante en el borde de la persistencia.
type Scope struct {
	Kind ScopeKind

	ProfessionalID string // CI del profesional
	Specialty      string
	ClinicID       uuid.UUID
}

func ProfessionalScope(professionalID string) Scope {
	return Scope{Kind: ScopeProfessional, ProfessionalID: professionalID}
}

func SpecialtyScope(clinicID uuid.UUID, specialty string) Scope {
	return Scope{Kind: ScopeSpecialty, ClinicID: clinicID, Specialty: specialty}
}

func ClinicScope(clinicID uuid.UUID) Scope {
	return Scope{Kind: ScopeClinic, ClinicID: clinicID}
}

func (sc Scope) Validate() error {
	switch sc.Kind {
	case ScopeProfessional:
		if sc.ProfessionalID == "" || sc.Specialty != "" || sc.ClinicID != uuid.Nil {
			return ErrInvalidScope
		}
	case ScopeSpecialty:
		if sc.ClinicID == uuid.Nil || sc.Specialty == "" || sc.ProfessionalID != "" {
			return ErrInvalidScope
		}
	case ScopeClinic:
		if sc.ClinicID == uuid.Nil || sc.ProfessionalID != "" || sc.Specialty != "" {
			return ErrInvalidScope
		}
	default:
		return ErrInvalidScope
	}
	return nil
}

// Matches decide si el alcance cubre la solicitud. El permiso a profesional
// específico aplica sin importar desde qué clínica consulte.
func (sc Scope) Matches(req AccessRequest) bool {
	switch sc.Kind {
	case ScopeProfessional:
		return sc.ProfessionalID == req.ProfessionalID
	case ScopeSpecialty:
		return sc.ClinicID == req.ClinicID && sc.Specialty == req.Specialty
	case ScopeClinic:
		return sc.ClinicID == req.ClinicID
	default:
		return false
	}
}
