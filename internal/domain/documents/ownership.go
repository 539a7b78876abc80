package documents

import (
	"context"

	"github.com/google/uuid"
)

// OwnerOf expone la historia clínica dueña de un documento.
// Se usa para evitar ciclos de imports entre módulos (documents <-> accesspolicies).
func (s *Service) OwnerOf(ctx context.Context, documentID uuid.UUID) (uuid.UUID, error) {
	d, err := s.GetByID(ctx, documentID)
	if err != nil {
		return uuid.Nil, err
	}
	return d.PatientID, nil
}
