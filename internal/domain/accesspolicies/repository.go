package accesspolicies

import (
	"context"

	"github.com/google/uuid"
)

// Repository es el almacén de políticas. Create rechaza con ErrInvalidScope
// cualquier política cuyo alcance no cumpla el invariante de Scope.Validate:
// ninguna consulta devuelve jamás una política malformada.
type Repository interface {
	Create(ctx context.Context, p Policy) error
	Update(ctx context.Context, p Policy) error
	GetByID(ctx context.Context, id uuid.UUID) (Policy, error)

	// ListByPatient devuelve todas las políticas del paciente (activas,
	// revocadas y expiradas), más reciente primero.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Policy, error)

	// ListApplicable devuelve las políticas del paciente que alcanzan al
	// documento: las específicas de ese documento y las de toda la historia.
	ListApplicable(ctx context.Context, patientID, documentID uuid.UUID) ([]Policy, error)
}
