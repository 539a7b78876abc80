package identity

import (
	"time"

	"github.com/google/uuid"
)

// Principal es la identidad canónica usada como sujeto de control de acceso.
// Inmutable una vez asignada al registro del usuario.
type Principal struct {
	DocumentType   DocumentType
	DocumentNumber string

	// TenantID identifica la clínica para profesionales. Para pacientes es
	// uuid.Nil: la identidad del paciente es transversal a las clínicas.
	TenantID uuid.UUID
}

// Patient es un usuario de salud registrado en el componente central.
type Patient struct {
	ID uuid.UUID // id de la historia clínica

	DocumentType   DocumentType
	DocumentNumber string

	FirstName string
	LastName  string
	Email     string
	BirthDate time.Time

	CreatedAt time.Time
}

func (p Patient) Principal() Principal {
	return Principal{
		DocumentType:   p.DocumentType,
		DocumentNumber: p.DocumentNumber,
	}
}

// Professional es un profesional de salud dado de alta por su clínica.
type Professional struct {
	DocumentType   DocumentType
	DocumentNumber string
	TenantID       uuid.UUID

	FullName  string
	Specialty string

	CreatedAt time.Time
}

func (p Professional) Principal() Principal {
	return Principal{
		DocumentType:   p.DocumentType,
		DocumentNumber: p.DocumentNumber,
		TenantID:       p.TenantID,
	}
}
