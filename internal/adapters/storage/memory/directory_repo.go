package memory

import (
	"context"
	"errors"
	"sync"

	"hcen-access/internal/domain/identity"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type directoryKey struct {
	tipo   identity.DocumentType
	numero string
}

type professionalKey struct {
	tipo   identity.DocumentType
	numero string
	tenant uuid.UUID
}

type directoryRepo struct {
	mu            sync.RWMutex
	patients      map[directoryKey]identity.Patient
	patientsByID  map[uuid.UUID]identity.Patient
	professionals map[professionalKey]identity.Professional
}

func NewDirectoryRepo() *directoryRepo {
	return &directoryRepo{
		patients:      make(map[directoryKey]identity.Patient),
		patientsByID:  make(map[uuid.UUID]identity.Patient),
		professionals: make(map[professionalKey]identity.Professional),
	}
}

func (r *directoryRepo) CreatePatient(ctx context.Context, p identity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == uuid.Nil || p.DocumentNumber == "" {
		return errors.New("patient id and document number required")
	}
	key := directoryKey{tipo: p.DocumentType, numero: p.DocumentNumber}
	if _, exists := r.patients[key]; exists {
		return errors.New("patient already registered")
	}
	r.patients[key] = p
	r.patientsByID[p.ID] = p
	return nil
}

func (r *directoryRepo) GetPatient(ctx context.Context, tipo identity.DocumentType, numero string) (identity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[directoryKey{tipo: tipo, numero: numero}]
	if !ok {
		return identity.Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *directoryRepo) GetPatientByID(ctx context.Context, id uuid.UUID) (identity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patientsByID[id]
	if !ok {
		return identity.Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *directoryRepo) GetProfessional(ctx context.Context, tipo identity.DocumentType, numero string, tenantID uuid.UUID) (identity.Professional, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.professionals[professionalKey{tipo: tipo, numero: numero, tenant: tenantID}]
	if !ok {
		return identity.Professional{}, ErrNotFound
	}
	return p, nil
}

// SeedProfessional carga un profesional en el catálogo. El alta real la
// hace cada clínica por un flujo externo; esto existe para dev y tests.
func (r *directoryRepo) SeedProfessional(p identity.Professional) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.professionals[professionalKey{tipo: p.DocumentType, numero: p.DocumentNumber, tenant: p.TenantID}] = p
}
