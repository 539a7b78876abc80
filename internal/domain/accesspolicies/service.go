package accesspolicies

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrBadState       = errors.New("invalid state")
	ErrDuplicateGrant = errors.New("duplicate active grant")
)

const defaultRevokeReason = "Revocado por el paciente"

// DocumentOwnerLookup evita importar el paquete documents (rompe ciclos).
type DocumentOwnerLookup interface {
	OwnerOf(ctx context.Context, documentID uuid.UUID) (uuid.UUID, error)
}

type Service struct {
	repo Repository
	docs DocumentOwnerLookup

	// defaultTTL se aplica solo cuando el otorgante no indica expiración.
	// 0 = sin expiración por defecto.
	defaultTTL time.Duration
	now        func() time.Time
}

type Option func(*Service)

// WithDefaultTTL fija la vigencia por defecto de un permiso nuevo
// (el despliegue original usaba 15 días).
func WithDefaultTTL(d time.Duration) Option {
	return func(s *Service) { s.defaultTTL = d }
}

func NewService(repo Repository, docs DocumentOwnerLookup, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		docs: docs,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type GrantInput struct {
	PatientID  uuid.UUID
	DocumentID *uuid.UUID // nil = toda la historia clínica
	Scope      Scope
	ExpiresAt  *time.Time // nil = sin expiración (o TTL por defecto si está configurado)
}

// Grant crea una política de acceso. Solo el paciente dueño puede otorgar
// sobre sus documentos.
func (s *Service) Grant(ctx context.Context, in GrantInput) (Policy, error) {
	if in.PatientID == uuid.Nil {
		return Policy{}, ErrInvalidInput
	}
	if err := in.Scope.Validate(); err != nil {
		return Policy{}, err
	}

	now := s.now()

	if in.DocumentID != nil {
		owner, err := s.docs.OwnerOf(ctx, *in.DocumentID)
		if err != nil {
			return Policy{}, ErrNotFound
		}
		if owner != in.PatientID {
			return Policy{}, ErrForbidden
		}
	}

	expiresAt := in.ExpiresAt
	if expiresAt == nil && s.defaultTTL > 0 {
		t := now.Add(s.defaultTTL)
		expiresAt = &t
	}
	if expiresAt != nil && !expiresAt.After(now) {
		return Policy{}, ErrInvalidInput
	}

	// No puede haber dos permisos activos idénticos (mismo alcance sobre el
	// mismo documento, o ambos de toda la historia). Revocar o dejar expirar
	// el anterior habilita a otorgar de nuevo.
	existing, err := s.repo.ListByPatient(ctx, in.PatientID)
	if err != nil {
		return Policy{}, err
	}
	for _, prev := range existing {
		if prev.ActiveAt(now) && sameDocument(prev.DocumentID, in.DocumentID) && prev.Scope == in.Scope {
			return Policy{}, ErrDuplicateGrant
		}
	}

	p := Policy{
		ID:         uuid.New(),
		PatientID:  in.PatientID,
		DocumentID: in.DocumentID,
		Scope:      in.Scope,
		GrantedAt:  now,
		ExpiresAt:  expiresAt,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Revoke revoca una política. Idempotente: revocar dos veces devuelve el
// mismo estado terminal sin error ni doble efecto. Un permiso ya expirado
// no se puede revocar (la expiración también es terminal).
func (s *Service) Revoke(ctx context.Context, policyID, actorPatientID uuid.UUID, reason string) (Policy, error) {
	if policyID == uuid.Nil || actorPatientID == uuid.Nil {
		return Policy{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, policyID)
	if err != nil {
		return Policy{}, ErrNotFound
	}
	if p.PatientID != actorPatientID {
		return Policy{}, ErrForbidden
	}

	now := s.now()
	switch p.State(now) {
	case StatusRevoked:
		return p, nil
	case StatusExpired:
		return Policy{}, ErrBadState
	}

	p.RevokedAt = &now
	p.RevokeReason = strings.TrimSpace(reason)
	if p.RevokeReason == "" {
		p.RevokeReason = defaultRevokeReason
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// ExtendExpiry corre la expiración de un permiso activo hacia adelante.
func (s *Service) ExtendExpiry(ctx context.Context, policyID, actorPatientID uuid.UUID, newExpiry time.Time) (Policy, error) {
	if policyID == uuid.Nil || actorPatientID == uuid.Nil {
		return Policy{}, ErrInvalidInput
	}

	now := s.now()
	if !newExpiry.After(now) {
		return Policy{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, policyID)
	if err != nil {
		return Policy{}, ErrNotFound
	}
	if p.PatientID != actorPatientID {
		return Policy{}, ErrForbidden
	}
	if p.State(now) != StatusActive {
		return Policy{}, ErrBadState
	}

	p.ExpiresAt = &newExpiry

	if err := s.repo.Update(ctx, p); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// ChangeScope re-alcanza un permiso activo. El alcance anterior se
// reemplaza completo (los campos del tipo previo quedan limpios).
func (s *Service) ChangeScope(ctx context.Context, policyID, actorPatientID uuid.UUID, newScope Scope) (Policy, error) {
	if policyID == uuid.Nil || actorPatientID == uuid.Nil {
		return Policy{}, ErrInvalidInput
	}
	if err := newScope.Validate(); err != nil {
		return Policy{}, err
	}

	p, err := s.repo.GetByID(ctx, policyID)
	if err != nil {
		return Policy{}, ErrNotFound
	}
	if p.PatientID != actorPatientID {
		return Policy{}, ErrForbidden
	}
	if p.State(s.now()) != StatusActive {
		return Policy{}, ErrBadState
	}

	p.Scope = newScope

	if err := s.repo.Update(ctx, p); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// ListByPatient devuelve todas las políticas del paciente, más reciente primero.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Policy, error) {
	if patientID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// ListActiveByDocument devuelve las políticas vigentes que alcanzan a un
// documento (incluidas las de toda la historia). La vigencia se computa
// acá, al momento de leer; no hay barrido de expiración.
func (s *Service) ListActiveByDocument(ctx context.Context, documentID uuid.UUID) ([]Policy, error) {
	if documentID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	owner, err := s.docs.OwnerOf(ctx, documentID)
	if err != nil {
		return nil, ErrNotFound
	}

	policies, err := s.repo.ListApplicable(ctx, owner, documentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	active := make([]Policy, 0, len(policies))
	for _, p := range policies {
		if p.ActiveAt(now) {
			active = append(active, p)
		}
	}
	return active, nil
}

// DocumentOwner expone la historia clínica dueña del documento (lo usa el
// handler para autorizar listados por documento).
func (s *Service) DocumentOwner(ctx context.Context, documentID uuid.UUID) (uuid.UUID, error) {
	if documentID == uuid.Nil {
		return uuid.Nil, ErrInvalidInput
	}
	owner, err := s.docs.OwnerOf(ctx, documentID)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return owner, nil
}

// CountActive cuenta los permisos vigentes de un documento.
func (s *Service) CountActive(ctx context.Context, documentID uuid.UUID) (int, error) {
	active, err := s.ListActiveByDocument(ctx, documentID)
	if err != nil {
		return 0, err
	}
	return len(active), nil
}

// Now expone el reloj del servicio; los handlers proyectan Status con este
// mismo instante, no con el reloj de pared.
func (s *Service) Now() time.Time {
	return s.now()
}

func sameDocument(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
