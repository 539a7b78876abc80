package documents

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalDocument es la referencia central a un documento clínico generado
// en una clínica. El contenido es inmutable: una nueva versión es un
// documento nuevo.
type ClinicalDocument struct {
	ID uuid.UUID

	// PatientID es la historia clínica dueña del documento.
	PatientID uuid.UUID

	// TenantID es la clínica de origen.
	TenantID uuid.UUID

	Type       string // CONSULTA, LABORATORIO, IMAGENOLOGIA, ...
	Title      string
	ContentRef string // URI del contenido en el componente periférico

	CreatedAt time.Time
}
