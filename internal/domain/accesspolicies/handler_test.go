package accesspolicies

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hcen-access/internal/domain/identity"
	"hcen-access/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type testPatients struct {
	id uuid.UUID
}

func (p *testPatients) PatientIDOf(ctx context.Context, tipo identity.DocumentType, numero string) (uuid.UUID, error) {
	return p.id, nil
}

// Los handlers proyectan el estado con el reloj del servicio, no con el de
// pared: una política que para el reloj inyectado ya venció se reporta
// EXPIRADO aunque su expiración quede lejos en el tiempo real.
func TestListByPatientHandler_ProyectaEstadoConRelojDelServicio(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestDocs())

	patientID := uuid.New()

	granted := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return granted }

	expiry := granted.Add(time.Hour)
	if _, err := svc.Grant(context.Background(), GrantInput{
		PatientID: patientID,
		Scope:     ClinicScope(uuid.New()),
		ExpiresAt: &expiry,
	}); err != nil {
		t.Fatalf("Grant error: %v", err)
	}

	// El reloj del servicio avanza más allá de la expiración.
	svc.now = func() time.Time { return granted.Add(2 * time.Hour) }

	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	r.Get("/patients/{patientID}/policies", listByPatientHandler(svc, &testPatients{id: patientID}))

	req := httptest.NewRequest("GET", "/patients/"+patientID.String()+"/policies", nil)
	req.Header.Set("X-Debug-Document-Number", "41234567")
	req.Header.Set("X-Debug-Document-Type", "CI")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var items []policyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 policy, got %d", len(items))
	}
	if items[0].Status != StatusExpired {
		t.Fatalf("expected EXPIRADO per service clock, got %s", items[0].Status)
	}
}
