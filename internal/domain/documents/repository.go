package documents

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d ClinicalDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (ClinicalDocument, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]ClinicalDocument, error)
}
