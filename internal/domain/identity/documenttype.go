package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DocumentType es el tipo de documento canónico interno.
// Todo valor externo (gub.uy, base de datos legacy) se normaliza a uno de
// estos tres antes de llegar a la capa de control de acceso.
// @Enum DO, PA, OTRO
type DocumentType string

const (
	DocumentTypeDO   DocumentType = "DO" // cédula de identidad
	DocumentTypePA   DocumentType = "PA" // pasaporte
	DocumentTypeOTRO DocumentType = "OTRO"
)

// synonyms es la tabla única de equivalencias. Los alias legacy que antes
// existían como constantes deprecated viven acá como entradas de tabla.
var synonyms = map[string]DocumentType{
	"DO":                        DocumentTypeDO,
	"CI":                        DocumentTypeDO,
	"C":                         DocumentTypeDO,
	"CEDULA":                    DocumentTypeDO,
	"CEDULAIDENTIDAD":           DocumentTypeDO,
	"CEDULADEIDENTIDAD":         DocumentTypeDO,
	"CEDULADEIDENTIDADURUGUAYA": DocumentTypeDO,

	"PA":        DocumentTypePA,
	"PASAPORTE": DocumentTypePA,
	"PASSPORT":  DocumentTypePA,
	"P":         DocumentTypePA,

	"OTRO":    DocumentTypeOTRO,
	"OTROS":   DocumentTypeOTRO,
	"DNI":     DocumentTypeOTRO,
	"DNIOTRO": DocumentTypeOTRO,
	"DOCUMENTONACIONALDEIDENTIDAD":          DocumentTypeOTRO,
	"DOCUMENTONACIONALDEIDENTIDADARGENTINA": DocumentTypeOTRO,
	"DOCUMENTONACIONALDEIDENTIDADURUGUAY":   DocumentTypeOTRO,
}

// stripMarks descompone a NFD y elimina los diacríticos ("Cédula" -> "Cedula").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize convierte una cadena cruda de tipo de documento al valor
// canónico DO/PA/OTRO. Es una función total: nunca falla, ante cualquier
// ambigüedad resuelve a OTRO (y a DO si la entrada viene vacía).
func Normalize(raw string) DocumentType {
	if strings.TrimSpace(raw) == "" {
		return DocumentTypeDO
	}

	token := sanitize(raw)
	if token == "" {
		return DocumentTypeOTRO
	}

	// gub.uy suele mandar variantes verbosas como "CI - Cédula de identidad".
	if strings.HasPrefix(token, "CI") &&
		(strings.Contains(token, "CEDULA") || strings.Contains(token, "IDENTIDAD")) {
		return DocumentTypeDO
	}

	if t, ok := synonyms[token]; ok {
		return t
	}
	return DocumentTypeOTRO
}

// sanitize deja el token en mayúsculas, sin acentos y solo con [A-Z0-9].
func sanitize(raw string) string {
	s, _, err := transform.String(stripMarks, strings.TrimSpace(raw))
	if err != nil {
		s = strings.TrimSpace(raw)
	}
	s = strings.ToUpper(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
