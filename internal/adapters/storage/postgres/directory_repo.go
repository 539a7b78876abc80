package postgres

import (
	"context"
	"database/sql"

	"hcen-access/internal/domain/identity"

	"github.com/google/uuid"
)

type DirectoryRepo struct {
	db *sql.DB
}

func NewDirectoryRepo(db *sql.DB) *DirectoryRepo {
	return &DirectoryRepo{db: db}
}

func (r *DirectoryRepo) CreatePatient(ctx context.Context, p identity.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (
			id, document_type, document_number,
			first_name, last_name, email, birth_date, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		string(p.DocumentType),
		p.DocumentNumber,
		p.FirstName,
		p.LastName,
		p.Email,
		p.BirthDate,
		p.CreatedAt,
	)
	return err
}

func (r *DirectoryRepo) GetPatient(ctx context.Context, tipo identity.DocumentType, numero string) (identity.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, document_type, document_number,
		       first_name, last_name, email, birth_date, created_at
		FROM patients
		WHERE document_type = $1 AND document_number = $2
	`, string(tipo), numero)

	return scanPatient(row)
}

func (r *DirectoryRepo) GetPatientByID(ctx context.Context, id uuid.UUID) (identity.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, document_type, document_number,
		       first_name, last_name, email, birth_date, created_at
		FROM patients
		WHERE id = $1
	`, id)

	return scanPatient(row)
}

func (r *DirectoryRepo) GetProfessional(ctx context.Context, tipo identity.DocumentType, numero string, tenantID uuid.UUID) (identity.Professional, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT document_type, document_number, tenant_id,
		       full_name, specialty, created_at
		FROM professionals
		WHERE document_type = $1 AND document_number = $2 AND tenant_id = $3
	`, string(tipo), numero, tenantID)

	var p identity.Professional
	var docType string

	if err := row.Scan(
		&docType,
		&p.DocumentNumber,
		&p.TenantID,
		&p.FullName,
		&p.Specialty,
		&p.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return identity.Professional{}, ErrNotFound
		}
		return identity.Professional{}, err
	}

	// Los valores persistidos también pasan por la normalización: nada
	// crudo llega a la capa de control de acceso.
	p.DocumentType = identity.Normalize(docType)
	return p, nil
}

func scanPatient(row *sql.Row) (identity.Patient, error) {
	var p identity.Patient
	var docType string

	if err := row.Scan(
		&p.ID,
		&docType,
		&p.DocumentNumber,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.BirthDate,
		&p.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return identity.Patient{}, ErrNotFound
		}
		return identity.Patient{}, err
	}

	p.DocumentType = identity.Normalize(docType)
	return p, nil
}
