package documents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"hcen-access/internal/domain/accesspolicies"
	"hcen-access/internal/domain/identity"
	"hcen-access/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PatientLookup traduce el principal autenticado a su historia clínica.
type PatientLookup interface {
	PatientIDOf(ctx context.Context, tipo identity.DocumentType, numero string) (uuid.UUID, error)
}

// AccessDecider decide si un profesional puede ver un documento.
type AccessDecider interface {
	Decide(ctx context.Context, req accesspolicies.AccessRequest) (accesspolicies.Decision, error)
}

func RegisterRoutes(r chi.Router, svc *Service, patients PatientLookup, decider AccessDecider) {
	r.Route("/documents", func(dr chi.Router) {
		dr.With(middleware.TenantID).Post("/", createDocumentHandler(svc))
		dr.Get("/{documentID}", getDocumentHandler(svc, patients, decider))
	})

	r.Get("/patients/{patientID}/documents", listByPatientHandler(svc, patients))
}

type createDocumentRequest struct {
	PatientID  uuid.UUID `json:"patient_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	ContentRef string    `json:"content_ref,omitempty"`
}

type documentResponse struct {
	ID         uuid.UUID `json:"id"`
	PatientID  uuid.UUID `json:"patient_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	ContentRef string    `json:"content_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// createDocumentHandler lo invoca la clínica de origen (requiere tenant).
func createDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.GetTenantID(r.Context())
		if !ok {
			http.Error(w, "X-Tenant-ID header is required", http.StatusBadRequest)
			return
		}

		var req createDocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			PatientID:  req.PatientID,
			TenantID:   tenantID,
			Type:       req.Type,
			Title:      req.Title,
			ContentRef: req.ContentRef,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toDocumentResponse(d))
	}
}

// getDocumentHandler: el paciente dueño siempre puede ver su documento; un
// profesional solo si el evaluador lo permite (default-deny).
func getDocumentHandler(svc *Service, patients PatientLookup, decider AccessDecider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.DocumentNumber) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		documentID, err := uuid.Parse(chi.URLParam(r, "documentID"))
		if err != nil {
			http.Error(w, "invalid document id", http.StatusBadRequest)
			return
		}

		d, err := svc.GetByID(r.Context(), documentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if patientID, err := patients.PatientIDOf(r.Context(), identity.Normalize(claims.DocumentType), claims.DocumentNumber); err == nil && patientID == d.PatientID {
			writeJSON(w, http.StatusOK, toDocumentResponse(d))
			return
		}

		// Solicitud de profesional: clínica por header, especialidad por query.
		tenantID, err := uuid.Parse(strings.TrimSpace(claims.TenantID))
		if err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		decision, err := decider.Decide(r.Context(), accesspolicies.AccessRequest{
			DocumentID:     documentID,
			ProfessionalID: claims.DocumentNumber,
			Specialty:      strings.TrimSpace(r.URL.Query().Get("specialty")),
			ClinicID:       tenantID,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if decision != accesspolicies.DecisionAllow {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toDocumentResponse(d))
	}
}

func listByPatientHandler(svc *Service, patients PatientLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.DocumentNumber) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		patientID, err := uuid.Parse(chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "invalid patient id", http.StatusBadRequest)
			return
		}

		actorID, err := patients.PatientIDOf(r.Context(), identity.Normalize(claims.DocumentType), claims.DocumentNumber)
		if err != nil || actorID != patientID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByPatient(r.Context(), patientID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]documentResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDocumentResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toDocumentResponse(d ClinicalDocument) documentResponse {
	return documentResponse{
		ID:         d.ID,
		PatientID:  d.PatientID,
		TenantID:   d.TenantID,
		Type:       d.Type,
		Title:      d.Title,
		ContentRef: d.ContentRef,
		CreatedAt:  d.CreatedAt,
	}
}

// writeJSON está duplicado en los handlers de cada módulo a propósito;
// si se repite en más lugares conviene extraerlo a un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
