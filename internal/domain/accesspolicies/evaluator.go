package accesspolicies

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Decision es el resultado de una evaluación de acceso.
// @Enum ALLOW, DENY
type Decision string

const (
	DecisionAllow Decision = "ALLOW"
	DecisionDeny  Decision = "DENY"
)

// AccessRequest es la solicitud de un profesional para ver un documento.
type AccessRequest struct {
	DocumentID     uuid.UUID
	ProfessionalID string // CI del profesional solicitante
	Specialty      string
	ClinicID       uuid.UUID // clínica (tenant) solicitante
}

// Evaluator decide ALLOW/DENY para una solicitud de acceso. Lectura pura:
// el resultado depende solo de las políticas persistidas y del instante de
// evaluación; evaluar dos veces al mismo instante sin escrituras intermedias
// da lo mismo. Default-deny: la ausencia de política activa que cubra la
// solicitud es el resultado negativo normal, no un error.
type Evaluator struct {
	repo Repository
	docs DocumentOwnerLookup
	log  zerolog.Logger
	now  func() time.Time
}

func NewEvaluator(repo Repository, docs DocumentOwnerLookup, log zerolog.Logger) *Evaluator {
	return &Evaluator{
		repo: repo,
		docs: docs,
		log:  log,
		now:  time.Now,
	}
}

func (e *Evaluator) Decide(ctx context.Context, req AccessRequest) (Decision, error) {
	if req.DocumentID == uuid.Nil || strings.TrimSpace(req.ProfessionalID) == "" || req.ClinicID == uuid.Nil {
		return DecisionDeny, nil
	}

	owner, err := e.docs.OwnerOf(ctx, req.DocumentID)
	if err != nil {
		// Documento desconocido: se deniega, no se falla.
		e.log.Debug().
			Str("document_id", req.DocumentID.String()).
			Msg("access denied: unknown document")
		return DecisionDeny, nil
	}

	policies, err := e.repo.ListApplicable(ctx, owner, req.DocumentID)
	if err != nil {
		return DecisionDeny, err
	}

	now := e.now()
	for _, p := range policies {
		if !p.ActiveAt(now) {
			continue
		}
		if p.Scope.Matches(req) {
			e.log.Debug().
				Str("document_id", req.DocumentID.String()).
				Str("professional_id", req.ProfessionalID).
				Str("policy_id", p.ID.String()).
				Str("scope", string(p.Scope.Kind)).
				Msg("access allowed")
			return DecisionAllow, nil
		}
	}

	e.log.Debug().
		Str("document_id", req.DocumentID.String()).
		Str("professional_id", req.ProfessionalID).
		Str("clinic_id", req.ClinicID.String()).
		Msg("access denied: no matching active policy")
	return DecisionDeny, nil
}

// DecideBatch evalúa varios documentos para el mismo profesional/clínica en
// una pasada. El mapa resultante cubre todos los documentos pedidos.
func (e *Evaluator) DecideBatch(ctx context.Context, documentIDs []uuid.UUID, professionalID, specialty string, clinicID uuid.UUID) (map[uuid.UUID]Decision, error) {
	out := make(map[uuid.UUID]Decision, len(documentIDs))
	for _, docID := range documentIDs {
		decision, err := e.Decide(ctx, AccessRequest{
			DocumentID:     docID,
			ProfessionalID: professionalID,
			Specialty:      specialty,
			ClinicID:       clinicID,
		})
		if err != nil {
			return nil, err
		}
		out[docID] = decision
	}
	return out, nil
}
