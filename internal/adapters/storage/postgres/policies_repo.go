package postgres

import (
	"context"
	"database/sql"

	"hcen-access/internal/domain/accesspolicies"

	"github.com/google/uuid"
)

type PoliciesRepo struct {
	db *sql.DB
}

func NewPoliciesRepo(db *sql.DB) *PoliciesRepo {
	return &PoliciesRepo{db: db}
}

func (r *PoliciesRepo) Create(ctx context.Context, p accesspolicies.Policy) error {
	// Mismo invariante que el repo en memoria: una política con alcance
	// malformado no entra jamás a la tabla.
	if err := p.Scope.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_policies (
			id, patient_id, document_id,
			scope_type, professional_id, specialty, clinic_id,
			granted_at, expires_at, revoked_at, revoke_reason
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.PatientID,
		toNullUUID(p.DocumentID),
		string(p.Scope.Kind),
		toNullString(p.Scope.ProfessionalID),
		toNullString(p.Scope.Specialty),
		uuidOrNull(p.Scope.ClinicID),
		p.GrantedAt,
		toNullTime(p.ExpiresAt),
		toNullTime(p.RevokedAt),
		toNullString(p.RevokeReason),
	)
	return err
}

func (r *PoliciesRepo) Update(ctx context.Context, p accesspolicies.Policy) error {
	if err := p.Scope.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE access_policies
		SET scope_type = $2, professional_id = $3, specialty = $4, clinic_id = $5,
		    expires_at = $6, revoked_at = $7, revoke_reason = $8
		WHERE id = $1
	`,
		p.ID,
		string(p.Scope.Kind),
		toNullString(p.Scope.ProfessionalID),
		toNullString(p.Scope.Specialty),
		uuidOrNull(p.Scope.ClinicID),
		toNullTime(p.ExpiresAt),
		toNullTime(p.RevokedAt),
		toNullString(p.RevokeReason),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PoliciesRepo) GetByID(ctx context.Context, id uuid.UUID) (accesspolicies.Policy, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, patient_id, document_id,
		       scope_type, professional_id, specialty, clinic_id,
		       granted_at, expires_at, revoked_at, revoke_reason
		FROM access_policies
		WHERE id = $1
	`, id)

	p, err := scanPolicy(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return accesspolicies.Policy{}, ErrNotFound
		}
		return accesspolicies.Policy{}, err
	}
	return p, nil
}

func (r *PoliciesRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]accesspolicies.Policy, error) {
	return r.list(ctx, `
		SELECT id, patient_id, document_id,
		       scope_type, professional_id, specialty, clinic_id,
		       granted_at, expires_at, revoked_at, revoke_reason
		FROM access_policies
		WHERE patient_id = $1
		ORDER BY granted_at DESC
	`, patientID)
}

func (r *PoliciesRepo) ListApplicable(ctx context.Context, patientID, documentID uuid.UUID) ([]accesspolicies.Policy, error) {
	// document_id IS NULL cubre las políticas de alcance total del paciente.
	return r.list(ctx, `
		SELECT id, patient_id, document_id,
		       scope_type, professional_id, specialty, clinic_id,
		       granted_at, expires_at, revoked_at, revoke_reason
		FROM access_policies
		WHERE patient_id = $1 AND (document_id IS NULL OR document_id = $2)
		ORDER BY granted_at DESC
	`, patientID, documentID)
}

func (r *PoliciesRepo) list(ctx context.Context, query string, args ...any) ([]accesspolicies.Policy, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]accesspolicies.Policy, 0)
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row rowScanner) (accesspolicies.Policy, error) {
	var (
		p            accesspolicies.Policy
		documentID   uuid.NullUUID
		clinicID     uuid.NullUUID
		scopeType    string
		professional sql.NullString
		specialty    sql.NullString
		expiresAt    sql.NullTime
		revokedAt    sql.NullTime
		revokeReason sql.NullString
	)

	if err := row.Scan(
		&p.ID,
		&p.PatientID,
		&documentID,
		&scopeType,
		&professional,
		&specialty,
		&clinicID,
		&p.GrantedAt,
		&expiresAt,
		&revokedAt,
		&revokeReason,
	); err != nil {
		return accesspolicies.Policy{}, err
	}

	p.DocumentID = fromNullUUID(documentID)
	p.Scope = accesspolicies.Scope{
		Kind:           accesspolicies.ScopeKind(scopeType),
		ProfessionalID: professional.String,
		Specialty:      specialty.String,
		ClinicID:       clinicID.UUID,
	}
	p.ExpiresAt = fromNullTime(expiresAt)
	p.RevokedAt = fromNullTime(revokedAt)
	p.RevokeReason = revokeReason.String
	return p, nil
}

func toNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func fromNullUUID(nid uuid.NullUUID) *uuid.UUID {
	if !nid.Valid {
		return nil
	}
	id := nid.UUID
	return &id
}

func uuidOrNull(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
