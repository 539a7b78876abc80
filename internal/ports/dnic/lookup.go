package dnic

import (
	"context"
	"errors"
	"time"
)

var ErrPersonNotFound = errors.New("person not found")

// Person es el registro civil que devuelve la DNIC para una cédula.
type Person struct {
	DocumentType   string // crudo, se normaliza en el dominio
	DocumentNumber string
	FirstName      string
	LastName       string
	BirthDate      time.Time
}

// PersonLookup consulta el directorio nacional de identificación civil.
type PersonLookup interface {
	GetPerson(ctx context.Context, tipoDocumento, numeroDocumento string) (Person, error)
}
