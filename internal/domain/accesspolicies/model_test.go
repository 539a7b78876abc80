package accesspolicies

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPolicy_State(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name      string
		expiresAt *time.Time
		revokedAt *time.Time
		want      Status
	}{
		{"sin expiracion ni revocacion", nil, nil, StatusActive},
		{"expira en el futuro", &future, nil, StatusActive},
		{"ya expirado", &past, nil, StatusExpired},
		{"expira exactamente ahora", &now, nil, StatusExpired},
		{"revocado", nil, &past, StatusRevoked},
		// La revocación domina aunque la expiración ya haya pasado.
		{"revocado y expirado", &past, &past, StatusRevoked},
		{"revocado con expiracion futura", &future, &past, StatusRevoked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Policy{ExpiresAt: tc.expiresAt, RevokedAt: tc.revokedAt}
			if got := p.State(now); got != tc.want {
				t.Fatalf("State() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPolicy_Covers(t *testing.T) {
	docID := uuid.New()
	otherID := uuid.New()

	wide := Policy{DocumentID: nil}
	if !wide.Covers(docID) || !wide.Covers(otherID) {
		t.Fatalf("expected patient-wide policy to cover any document")
	}

	scoped := Policy{DocumentID: &docID}
	if !scoped.Covers(docID) {
		t.Fatalf("expected policy to cover its own document")
	}
	if scoped.Covers(otherID) {
		t.Fatalf("expected policy not to cover other documents")
	}
}

func TestScope_Validate(t *testing.T) {
	clinicID := uuid.New()

	valid := []Scope{
		ProfessionalScope("41234567"),
		SpecialtyScope(clinicID, "cardiología"),
		ClinicScope(clinicID),
	}
	for _, sc := range valid {
		if err := sc.Validate(); err != nil {
			t.Fatalf("Validate(%s) = %v, want nil", sc.Kind, err)
		}
	}

	invalid := []Scope{
		{},                                // sin kind
		{Kind: ScopeKind("CUALQUIERA")},   // kind desconocido
		{Kind: ScopeProfessional},         // falta professional_id
		{Kind: ScopeSpecialty, Specialty: "pediatría"},              // falta clinic
		{Kind: ScopeSpecialty, ClinicID: clinicID},                  // falta especialidad
		{Kind: ScopeClinic},                                         // falta clinic
		{Kind: ScopeClinic, ClinicID: clinicID, Specialty: "x"},     // campo de mas
		{Kind: ScopeProfessional, ProfessionalID: "1", ClinicID: clinicID}, // campo de mas
	}
	for i, sc := range invalid {
		if err := sc.Validate(); err != ErrInvalidScope {
			t.Fatalf("case %d: Validate() = %v, want ErrInvalidScope", i, err)
		}
	}
}

func TestScope_Matches(t *testing.T) {
	clinicA := uuid.New()
	clinicB := uuid.New()

	req := AccessRequest{
		ProfessionalID: "41234567",
		Specialty:      "cardiología",
		ClinicID:       clinicA,
	}

	// El permiso a profesional específico sigue al profesional entre clínicas.
	prof := ProfessionalScope("41234567")
	if !prof.Matches(req) {
		t.Fatalf("expected professional scope to match")
	}
	reqOtherClinic := req
	reqOtherClinic.ClinicID = clinicB
	if !prof.Matches(reqOtherClinic) {
		t.Fatalf("expected professional scope to match from any clinic")
	}
	reqOtherProf := req
	reqOtherProf.ProfessionalID = "99999999"
	if prof.Matches(reqOtherProf) {
		t.Fatalf("expected professional scope not to match other professional")
	}

	// La especialidad está acotada a la clínica.
	spec := SpecialtyScope(clinicA, "cardiología")
	if !spec.Matches(req) {
		t.Fatalf("expected specialty scope to match")
	}
	if spec.Matches(reqOtherClinic) {
		t.Fatalf("expected specialty scope not to match other clinic")
	}
	reqOtherSpec := req
	reqOtherSpec.Specialty = "pediatría"
	if spec.Matches(reqOtherSpec) {
		t.Fatalf("expected specialty scope not to match other specialty")
	}

	clinic := ClinicScope(clinicA)
	if !clinic.Matches(req) {
		t.Fatalf("expected clinic scope to match")
	}
	if clinic.Matches(reqOtherClinic) {
		t.Fatalf("expected clinic scope not to match other clinic")
	}
}
