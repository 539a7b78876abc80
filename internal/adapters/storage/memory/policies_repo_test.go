package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"hcen-access/internal/domain/accesspolicies"

	"github.com/google/uuid"
)

func validPolicy(patientID uuid.UUID) accesspolicies.Policy {
	return accesspolicies.Policy{
		ID:        uuid.New(),
		PatientID: patientID,
		Scope:     accesspolicies.ClinicScope(uuid.New()),
		GrantedAt: time.Now(),
	}
}

func TestPoliciesRepo_Create_RechazaAlcanceMalformado(t *testing.T) {
	repo := NewPoliciesRepo()
	patientID := uuid.New()

	cases := []struct {
		name  string
		scope accesspolicies.Scope
	}{
		{"sin campos", accesspolicies.Scope{Kind: accesspolicies.ScopeClinic}},
		{"dos familias pobladas", accesspolicies.Scope{
			Kind:           accesspolicies.ScopeProfessional,
			ProfessionalID: "41234567",
			ClinicID:       uuid.New(),
		}},
		{"kind desconocido", accesspolicies.Scope{Kind: "CUALQUIERA", ClinicID: uuid.New()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPolicy(patientID)
			p.Scope = tc.scope
			err := repo.Create(context.Background(), p)
			if !errors.Is(err, accesspolicies.ErrInvalidScope) {
				t.Fatalf("expected ErrInvalidScope, got %v", err)
			}
		})
	}
}

func TestPoliciesRepo_Update_RechazaAlcanceMalformado(t *testing.T) {
	repo := NewPoliciesRepo()
	p := validPolicy(uuid.New())

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	p.Scope = accesspolicies.Scope{Kind: accesspolicies.ScopeSpecialty, Specialty: "cardiología"}
	if err := repo.Update(context.Background(), p); !errors.Is(err, accesspolicies.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope on update, got %v", err)
	}

	// El registro original quedó intacto.
	stored, err := repo.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if stored.Scope.Kind != accesspolicies.ScopeClinic {
		t.Fatalf("expected stored scope untouched, got %s", stored.Scope.Kind)
	}
}

func TestPoliciesRepo_ListApplicable(t *testing.T) {
	repo := NewPoliciesRepo()
	patientID := uuid.New()
	docID := uuid.New()
	otherDoc := uuid.New()

	// De toda la historia: aplica a cualquier documento del paciente.
	wide := validPolicy(patientID)
	if err := repo.Create(context.Background(), wide); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Acotada al documento.
	scoped := validPolicy(patientID)
	scoped.DocumentID = &docID
	if err := repo.Create(context.Background(), scoped); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Acotada a otro documento: no debe aparecer.
	other := validPolicy(patientID)
	other.DocumentID = &otherDoc
	if err := repo.Create(context.Background(), other); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// De otro paciente: no debe aparecer.
	foreign := validPolicy(uuid.New())
	if err := repo.Create(context.Background(), foreign); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.ListApplicable(context.Background(), patientID, docID)
	if err != nil {
		t.Fatalf("ListApplicable error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 applicable policies, got %d", len(got))
	}
	ids := map[uuid.UUID]bool{}
	for _, p := range got {
		ids[p.ID] = true
	}
	if !ids[wide.ID] || !ids[scoped.ID] {
		t.Fatalf("expected wide and scoped policies, got %v", ids)
	}
}

func TestPoliciesRepo_ListByPatient_MasRecientePrimero(t *testing.T) {
	repo := NewPoliciesRepo()
	patientID := uuid.New()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	old := validPolicy(patientID)
	old.GrantedAt = base.Add(-2 * time.Hour)
	recent := validPolicy(patientID)
	recent.GrantedAt = base

	if err := repo.Create(context.Background(), old); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := repo.Create(context.Background(), recent); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.ListByPatient(context.Background(), patientID)
	if err != nil {
		t.Fatalf("ListByPatient error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 policies, got %d", len(got))
	}
	if got[0].ID != recent.ID {
		t.Fatalf("expected newest first")
	}
}
