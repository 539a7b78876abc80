package identity

import (
	"context"

	"github.com/google/uuid"
)

// DirectoryRepository es el catálogo persistido de pacientes y profesionales.
// El alta de profesionales la hace cada clínica por fuera de este módulo;
// acá solo se consulta.
type DirectoryRepository interface {
	CreatePatient(ctx context.Context, p Patient) error
	GetPatient(ctx context.Context, tipo DocumentType, numero string) (Patient, error)
	GetPatientByID(ctx context.Context, id uuid.UUID) (Patient, error)
	GetProfessional(ctx context.Context, tipo DocumentType, numero string, tenantID uuid.UUID) (Professional, error)
}
