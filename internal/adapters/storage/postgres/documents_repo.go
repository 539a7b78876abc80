package postgres

import (
	"context"
	"database/sql"

	"hcen-access/internal/domain/documents"

	"github.com/google/uuid"
)

type DocumentsRepo struct {
	db *sql.DB
}

func NewDocumentsRepo(db *sql.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

func (r *DocumentsRepo) Create(ctx context.Context, d documents.ClinicalDocument) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinical_documents (
			id, patient_id, tenant_id, doc_type, title, content_ref, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		d.ID,
		d.PatientID,
		d.TenantID,
		d.Type,
		d.Title,
		d.ContentRef,
		d.CreatedAt,
	)
	return err
}

func (r *DocumentsRepo) GetByID(ctx context.Context, id uuid.UUID) (documents.ClinicalDocument, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, patient_id, tenant_id, doc_type, title, content_ref, created_at
		FROM clinical_documents
		WHERE id = $1
	`, id)

	var d documents.ClinicalDocument
	if err := row.Scan(
		&d.ID,
		&d.PatientID,
		&d.TenantID,
		&d.Type,
		&d.Title,
		&d.ContentRef,
		&d.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return documents.ClinicalDocument{}, ErrNotFound
		}
		return documents.ClinicalDocument{}, err
	}
	return d, nil
}

func (r *DocumentsRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]documents.ClinicalDocument, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, patient_id, tenant_id, doc_type, title, content_ref, created_at
		FROM clinical_documents
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]documents.ClinicalDocument, 0)
	for rows.Next() {
		var d documents.ClinicalDocument
		if err := rows.Scan(
			&d.ID,
			&d.PatientID,
			&d.TenantID,
			&d.Type,
			&d.Title,
			&d.ContentRef,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}
