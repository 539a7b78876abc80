package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"hcen-access/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", registerPatientHandler(svc))
		pr.Get("/resolve", resolvePrincipalHandler(svc))
		pr.Get("/me", getMyPatientHandler(svc))
	})
}

type registerPatientRequest struct {
	DocumentType   DocumentTypeClaim `json:"document_type"`
	DocumentNumber string            `json:"document_number"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	BirthDate      string            `json:"birth_date"` // YYYY-MM-DD
}

type patientResponse struct {
	ID             uuid.UUID    `json:"id"`
	DocumentType   DocumentType `json:"document_type"`
	DocumentNumber string       `json:"document_number"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          string       `json:"email,omitempty"`
	BirthDate      string       `json:"birth_date"`
	CreatedAt      time.Time    `json:"created_at"`
}

type principalResponse struct {
	DocumentType   DocumentType `json:"document_type"`
	DocumentNumber string       `json:"document_number"`
	TenantID       *uuid.UUID   `json:"tenant_id,omitempty"`
}

func registerPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var birthDate time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			parsed, err := time.Parse("2006-01-02", strings.TrimSpace(req.BirthDate))
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			birthDate = parsed
		}

		p, err := svc.Register(r.Context(), RegisterInput{
			RawDocumentType: req.DocumentType.Raw(),
			DocumentNumber:  req.DocumentNumber,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			BirthDate:       birthDate,
		})
		if err != nil {
			var underage *UnderageError
			switch {
			case errors.As(err, &underage):
				http.Error(w, underage.Error(), http.StatusUnprocessableEntity)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "person not found in national registry", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

func resolvePrincipalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		tipo := Normalize(q.Get("document_type"))
		numero := strings.TrimSpace(q.Get("document_number"))

		tenantID := uuid.Nil
		if raw := strings.TrimSpace(q.Get("tenant_id")); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "invalid tenant_id", http.StatusBadRequest)
				return
			}
			tenantID = parsed
		}

		principal, err := svc.Resolve(r.Context(), tipo, numero, tenantID)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		resp := principalResponse{
			DocumentType:   principal.DocumentType,
			DocumentNumber: principal.DocumentNumber,
		}
		if principal.TenantID != uuid.Nil {
			t := principal.TenantID
			resp.TenantID = &t
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getMyPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.DocumentNumber) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetPatient(r.Context(), Normalize(claims.DocumentType), claims.DocumentNumber)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:             p.ID,
		DocumentType:   p.DocumentType,
		DocumentNumber: p.DocumentNumber,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		BirthDate:      p.BirthDate.Format("2006-01-02"),
		CreatedAt:      p.CreatedAt,
	}
}

// writeJSON está duplicado en los handlers de cada módulo a propósito;
// si se repite en más lugares conviene extraerlo a un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
