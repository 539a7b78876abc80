package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hcen-access/internal/domain/documents"

	"github.com/google/uuid"
)

type documentsRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]documents.ClinicalDocument
}

func NewDocumentsRepo() documents.Repository {
	return &documentsRepo{
		byID: make(map[uuid.UUID]documents.ClinicalDocument),
	}
}

func (r *documentsRepo) Create(ctx context.Context, d documents.ClinicalDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == uuid.Nil {
		return errors.New("document id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("document already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *documentsRepo) GetByID(ctx context.Context, id uuid.UUID) (documents.ClinicalDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return documents.ClinicalDocument{}, ErrNotFound
	}
	return d, nil
}

func (r *documentsRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]documents.ClinicalDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]documents.ClinicalDocument, 0)
	for _, d := range r.byID {
		if d.PatientID == patientID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
