package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hcen-access/internal/ports/dnic"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// UnderageError bloquea el registro de menores de edad. Se valida una sola
// vez, en la creación de la cuenta; nunca es una condición revocable después.
type UnderageError struct {
	BirthDate time.Time
	Age       int
}

func (e *UnderageError) Error() string {
	return fmt.Sprintf("usuario menor de edad: nacimiento=%s, edad=%d",
		e.BirthDate.Format("2006-01-02"), e.Age)
}

const minimumAge = 18

type Service struct {
	repo    DirectoryRepository
	persons dnic.PersonLookup // opcional; si está, la fecha de nacimiento sale de DNIC
	now     func() time.Time
}

type Option func(*Service)

// WithPersonLookup habilita la verificación contra la DNIC en el registro.
func WithPersonLookup(l dnic.PersonLookup) Option {
	return func(s *Service) { s.persons = l }
}

func NewService(repo DirectoryRepository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterInput struct {
	RawDocumentType string // se normaliza acá; nunca se persiste crudo
	DocumentNumber  string
	FirstName       string
	LastName        string
	Email           string
	BirthDate       time.Time
}

// Register da de alta un usuario de salud. La elegibilidad por edad (>= 18)
// se valida acá y solo acá.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Patient, error) {
	numero := strings.TrimSpace(in.DocumentNumber)
	if numero == "" {
		return Patient{}, ErrInvalidInput
	}

	tipo := Normalize(in.RawDocumentType)

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	birthDate := in.BirthDate

	// Con DNIC configurada, el registro civil es la fuente de verdad para
	// nombre y fecha de nacimiento.
	if s.persons != nil {
		person, err := s.persons.GetPerson(ctx, string(tipo), numero)
		if err != nil {
			if errors.Is(err, dnic.ErrPersonNotFound) {
				return Patient{}, ErrNotFound
			}
			return Patient{}, err
		}
		birthDate = person.BirthDate
		if strings.TrimSpace(person.FirstName) != "" {
			firstName = strings.TrimSpace(person.FirstName)
		}
		if strings.TrimSpace(person.LastName) != "" {
			lastName = strings.TrimSpace(person.LastName)
		}
	}

	now := s.now()
	if birthDate.IsZero() || birthDate.After(now) {
		return Patient{}, ErrInvalidInput
	}
	if age := ageAt(birthDate, now); age < minimumAge {
		return Patient{}, &UnderageError{BirthDate: birthDate, Age: age}
	}

	p := Patient{
		ID:             uuid.New(),
		DocumentType:   tipo,
		DocumentNumber: numero,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          strings.TrimSpace(in.Email),
		BirthDate:      birthDate,
		CreatedAt:      now,
	}

	if err := s.repo.CreatePatient(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// Resolve produce el Principal canónico para (tipo, número, tenant).
// La identidad del paciente es independiente del tenant; la del profesional
// está acotada a su clínica.
func (s *Service) Resolve(ctx context.Context, tipo DocumentType, numero string, tenantID uuid.UUID) (Principal, error) {
	numero = strings.TrimSpace(numero)
	if numero == "" {
		return Principal{}, ErrInvalidInput
	}

	if patient, err := s.repo.GetPatient(ctx, tipo, numero); err == nil {
		return patient.Principal(), nil
	}

	if tenantID != uuid.Nil {
		if prof, err := s.repo.GetProfessional(ctx, tipo, numero, tenantID); err == nil {
			return prof.Principal(), nil
		}
	}

	return Principal{}, ErrNotFound
}

// PatientIDOf devuelve el id de historia clínica para un paciente registrado.
// Lo usan los handlers de otros módulos para traducir claims a paciente.
func (s *Service) PatientIDOf(ctx context.Context, tipo DocumentType, numero string) (uuid.UUID, error) {
	numero = strings.TrimSpace(numero)
	if numero == "" {
		return uuid.Nil, ErrInvalidInput
	}
	patient, err := s.repo.GetPatient(ctx, tipo, numero)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return patient.ID, nil
}

// GetPatient expone el registro completo (lo usa el handler de /patients).
func (s *Service) GetPatient(ctx context.Context, tipo DocumentType, numero string) (Patient, error) {
	numero = strings.TrimSpace(numero)
	if numero == "" {
		return Patient{}, ErrInvalidInput
	}
	patient, err := s.repo.GetPatient(ctx, tipo, numero)
	if err != nil {
		return Patient{}, ErrNotFound
	}
	return patient, nil
}

// ageAt calcula años cumplidos a la fecha de referencia.
func ageAt(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	anniversary := time.Date(at.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, at.Location())
	if at.Before(anniversary) {
		years--
	}
	return years
}
