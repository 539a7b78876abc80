package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hcen-access/internal/domain/accesspolicies"

	"github.com/google/uuid"
)

type policiesRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]accesspolicies.Policy
}

func NewPoliciesRepo() accesspolicies.Repository {
	return &policiesRepo{
		byID: make(map[uuid.UUID]accesspolicies.Policy),
	}
}

func (r *policiesRepo) Create(ctx context.Context, p accesspolicies.Policy) error {
	// El invariante de alcance se rechaza en el borde del almacén: ninguna
	// consulta devuelve jamás una política malformada.
	if err := p.Scope.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == uuid.Nil {
		return errors.New("policy id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("policy already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *policiesRepo) Update(ctx context.Context, p accesspolicies.Policy) error {
	if err := p.Scope.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *policiesRepo) GetByID(ctx context.Context, id uuid.UUID) (accesspolicies.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return accesspolicies.Policy{}, ErrNotFound
	}
	return p, nil
}

func (r *policiesRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]accesspolicies.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accesspolicies.Policy, 0)
	for _, p := range r.byID {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GrantedAt.After(out[j].GrantedAt) })
	return out, nil
}

func (r *policiesRepo) ListApplicable(ctx context.Context, patientID, documentID uuid.UUID) ([]accesspolicies.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accesspolicies.Policy, 0)
	for _, p := range r.byID {
		if p.PatientID != patientID {
			continue
		}
		if !p.Covers(documentID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GrantedAt.After(out[j].GrantedAt) })
	return out, nil
}
