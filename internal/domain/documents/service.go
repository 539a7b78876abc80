package documents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PatientID  uuid.UUID
	TenantID   uuid.UUID
	Type       string
	Title      string
	ContentRef string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (ClinicalDocument, error) {
	if in.PatientID == uuid.Nil || in.TenantID == uuid.Nil {
		return ClinicalDocument{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Title) == "" {
		return ClinicalDocument{}, ErrInvalidInput
	}

	d := ClinicalDocument{
		ID:         uuid.New(),
		PatientID:  in.PatientID,
		TenantID:   in.TenantID,
		Type:       strings.ToUpper(strings.TrimSpace(in.Type)),
		Title:      strings.TrimSpace(in.Title),
		ContentRef: strings.TrimSpace(in.ContentRef),
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return ClinicalDocument{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (ClinicalDocument, error) {
	if id == uuid.Nil {
		return ClinicalDocument{}, ErrInvalidInput
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ClinicalDocument{}, ErrNotFound
	}
	return d, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]ClinicalDocument, error) {
	if patientID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPatient(ctx, patientID)
}
