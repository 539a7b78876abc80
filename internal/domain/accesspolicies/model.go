package accesspolicies

import (
	"time"

	"github.com/google/uuid"
)

// Status es el estado de un permiso (EstadoPermiso).
// Nunca se persiste: es una proyección pura de (RevokedAt, ExpiresAt, now),
// así el estado no puede desincronizarse de los campos temporales.
// @Enum ACTIVO, REVOCADO, EXPIRADO
type Status string

const (
	StatusActive  Status = "ACTIVO"
	StatusRevoked Status = "REVOCADO"
	StatusExpired Status = "EXPIRADO"
)

// Policy es una política de acceso otorgada por el paciente dueño de la
// historia clínica. Solo muta por revocación (o por extensión/re-alcance
// mientras sigue activa); nunca se borra, queda para auditoría.
type Policy struct {
	ID uuid.UUID

	// PatientID es la historia clínica del paciente que otorga (y dueño de
	// los documentos alcanzados).
	PatientID uuid.UUID

	// DocumentID acota el permiso a un documento puntual.
	// nil = alcanza todos los documentos del paciente.
	DocumentID *uuid.UUID

	Scope Scope

	GrantedAt time.Time
	ExpiresAt *time.Time // nil = sin expiración
	RevokedAt *time.Time

	RevokeReason string
}

// State computa el estado al instante dado. La revocación domina a la
// expiración; ambos estados son terminales.
func (p Policy) State(now time.Time) Status {
	if p.RevokedAt != nil {
		return StatusRevoked
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return StatusExpired
	}
	return StatusActive
}

func (p Policy) ActiveAt(now time.Time) bool {
	return p.State(now) == StatusActive
}

// Covers indica si la política alcanza al documento dado.
func (p Policy) Covers(documentID uuid.UUID) bool {
	return p.DocumentID == nil || *p.DocumentID == documentID
}
