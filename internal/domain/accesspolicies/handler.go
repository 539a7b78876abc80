package accesspolicies

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"hcen-access/internal/domain/identity"
	"hcen-access/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PatientLookup traduce el principal autenticado a su historia clínica.
type PatientLookup interface {
	PatientIDOf(ctx context.Context, tipo identity.DocumentType, numero string) (uuid.UUID, error)
}

func RegisterRoutes(r chi.Router, svc *Service, eval *Evaluator, patients PatientLookup) {
	// Acciones del paciente sobre sus propias políticas
	r.Route("/patients/{patientID}/policies", func(pr chi.Router) {
		pr.Post("/", grantHandler(svc, patients))
		pr.Get("/", listByPatientHandler(svc, patients))
	})

	r.Route("/policies/{policyID}", func(pr chi.Router) {
		pr.Post("/revoke", revokeHandler(svc, patients))
		pr.Post("/extend", extendHandler(svc, patients))
		pr.Post("/scope", changeScopeHandler(svc, patients))
	})

	r.Get("/documents/{documentID}/policies", listActiveByDocumentHandler(svc, patients))

	// Rutas federadas: las consultan los componentes periféricos con tenant.
	r.Route("/access-requests", func(ar chi.Router) {
		ar.Use(middleware.TenantID)
		ar.Post("/evaluate", evaluateHandler(eval))
		ar.Post("/evaluate-batch", evaluateBatchHandler(eval))
	})
}

type grantRequest struct {
	DocumentID     *uuid.UUID `json:"document_id,omitempty"` // omitido = toda la historia
	ScopeType      string     `json:"scope_type"`
	ProfessionalID string     `json:"professional_id,omitempty"`
	Specialty      string     `json:"specialty,omitempty"`
	ClinicID       *uuid.UUID `json:"clinic_id,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

type revokeRequest struct {
	Reason string `json:"reason,omitempty"`
}

type extendRequest struct {
	ExpiresAt time.Time `json:"expires_at"`
}

type policyResponse struct {
	ID           uuid.UUID  `json:"id"`
	PatientID    uuid.UUID  `json:"patient_id"`
	DocumentID   *uuid.UUID `json:"document_id,omitempty"`
	ScopeType    ScopeKind  `json:"scope_type"`
	Professional string     `json:"professional_id,omitempty"`
	Specialty    string     `json:"specialty,omitempty"`
	ClinicID     *uuid.UUID `json:"clinic_id,omitempty"`
	Status       Status     `json:"status"`
	GrantedAt    time.Time  `json:"granted_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
	RevokeReason string     `json:"revoke_reason,omitempty"`
}

type decisionResponse struct {
	Decision Decision `json:"decision"`
}

func grantHandler(svc *Service, patients PatientLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := authenticatedPatient(w, r, patients)
		if !ok {
			return
		}

		patientID, err := uuid.Parse(chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "invalid patient id", http.StatusBadRequest)
			return
		}
		if patientID != actorID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req grantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Grant(r.Context(), GrantInput{
			PatientID:  patientID,
			DocumentID: req.DocumentID,
			Scope:      scopeFromRequest(req),
			ExpiresAt:  req.ExpiresAt,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPolicyResponse(p, svc.Now()))
	}
}

func listByPatientHandler(svc *Service, patients PatientLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := authenticatedPatient(w, r, patients)
		if !ok {
			return
		}

		patientID, err := uuid.Parse(chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "invalid patient id", http.StatusBadRequest)
			return
		}
		if patientID != actorID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByPatient(r.Context(), patientID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		now := svc.Now()
		out := make([]policyResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPolicyResponse(p, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func revokeHandler(svc *Service, patients PatientLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := authenticatedPatient(w, r, patients)
		if !ok {
			return
		}

		policyID, err := uuid.Parse(chi.URLParam(r, "policyID"))
		if err != nil {
			http.Error(w, "invalid policy id", http.StatusBadRequest)
			return
		}

		// El body es opcional: revocar sin motivo es válido.
		var req revokeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		p, err := svc.Revoke(r.Context(), policyID, actorID, req.Reason)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPolicyResponse(p, svc.Now()))
	}
}

func extendHandler(svc *Service, patients PatientLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := authenticatedPatient(w, r, patients)
		if !ok {
			return
		}

		policyID, err := uuid.Parse(chi.URLParam(r, "policyID"))
		if err != nil {
			http.Error(w, "invalid policy id", http.StatusBadRequest)
			return
		}

		var req extendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ExpiresAt.IsZero() {
			http.Error(w, "expires_at required", http.StatusBadRequest)
			return
		}

		p, err := svc.ExtendExpiry(r.Context(), policyID, actorID, req.ExpiresAt)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPolicyResponse(p, svc.Now()))
	}
}

func changeScopeHandler(svc *Service, patients PatientLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := authenticatedPatient(w, r, patients)
		if !ok {
			return
		}

		policyID, err := uuid.Parse(chi.URLParam(r, "policyID"))
		if err != nil {
			http.Error(w, "invalid policy id", http.StatusBadRequest)
			return
		}

		var req grantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.ChangeScope(r.Context(), policyID, actorID, scopeFromRequest(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPolicyResponse(p, svc.Now()))
	}
}

func listActiveByDocumentHandler(svc *Service, patients PatientLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := authenticatedPatient(w, r, patients)
		if !ok {
			return
		}

		documentID, err := uuid.Parse(chi.URLParam(r, "documentID"))
		if err != nil {
			http.Error(w, "invalid document id", http.StatusBadRequest)
			return
		}

		// Solo el dueño ve las políticas de su documento.
		owner, err := svc.DocumentOwner(r.Context(), documentID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if owner != actorID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListActiveByDocument(r.Context(), documentID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		now := svc.Now()
		out := make([]policyResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPolicyResponse(p, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type evaluateRequest struct {
	DocumentID     uuid.UUID `json:"document_id"`
	ProfessionalID string    `json:"professional_id"`
	Specialty      string    `json:"specialty,omitempty"`
}

type evaluateBatchRequest struct {
	DocumentIDs    []uuid.UUID `json:"document_ids"`
	ProfessionalID string      `json:"professional_id"`
	Specialty      string      `json:"specialty,omitempty"`
}

func evaluateHandler(eval *Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.GetTenantID(r.Context())
		if !ok {
			http.Error(w, "X-Tenant-ID header is required", http.StatusBadRequest)
			return
		}

		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		decision, err := eval.Decide(r.Context(), AccessRequest{
			DocumentID:     req.DocumentID,
			ProfessionalID: strings.TrimSpace(req.ProfessionalID),
			Specialty:      strings.TrimSpace(req.Specialty),
			ClinicID:       tenantID,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, decisionResponse{Decision: decision})
	}
}

func evaluateBatchHandler(eval *Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.GetTenantID(r.Context())
		if !ok {
			http.Error(w, "X-Tenant-ID header is required", http.StatusBadRequest)
			return
		}

		var req evaluateBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if len(req.DocumentIDs) == 0 {
			http.Error(w, "document_ids required", http.StatusBadRequest)
			return
		}

		decisions, err := eval.DecideBatch(r.Context(), req.DocumentIDs,
			strings.TrimSpace(req.ProfessionalID), strings.TrimSpace(req.Specialty), tenantID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make(map[string]Decision, len(decisions))
		for docID, d := range decisions {
			out[docID.String()] = d
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func authenticatedPatient(w http.ResponseWriter, r *http.Request, patients PatientLookup) (uuid.UUID, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.DocumentNumber) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}

	patientID, err := patients.PatientIDOf(r.Context(), identity.Normalize(claims.DocumentType), claims.DocumentNumber)
	if err != nil {
		http.Error(w, "forbidden", http.StatusForbidden)
		return uuid.Nil, false
	}
	return patientID, true
}

func scopeFromRequest(req grantRequest) Scope {
	sc := Scope{
		Kind:           ScopeKind(strings.TrimSpace(req.ScopeType)),
		ProfessionalID: strings.TrimSpace(req.ProfessionalID),
		Specialty:      strings.TrimSpace(req.Specialty),
	}
	if req.ClinicID != nil {
		sc.ClinicID = *req.ClinicID
	}
	return sc
}

func toPolicyResponse(p Policy, now time.Time) policyResponse {
	resp := policyResponse{
		ID:           p.ID,
		PatientID:    p.PatientID,
		DocumentID:   p.DocumentID,
		ScopeType:    p.Scope.Kind,
		Professional: p.Scope.ProfessionalID,
		Specialty:    p.Scope.Specialty,
		Status:       p.State(now),
		GrantedAt:    p.GrantedAt,
		ExpiresAt:    p.ExpiresAt,
		RevokedAt:    p.RevokedAt,
		RevokeReason: p.RevokeReason,
	}
	if p.Scope.ClinicID != uuid.Nil {
		c := p.Scope.ClinicID
		resp.ClinicID = &c
	}
	return resp
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidScope):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState), errors.Is(err, ErrDuplicateGrant):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado en los handlers de cada módulo a propósito;
// si se repite en más lugares conviene extraerlo a un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
