package identity

import (
	"encoding/json"
	"strings"
)

// DocumentTypeClaim decodifica el tipo_documento tal como lo manda gub.uy,
// que puede llegar como:
// - String simple: "CI"
// - Objeto: {"codigo": "1", "descripcion": "CI"}
// Si ambos campos vienen, gana descripcion. La decodificación nunca falla:
// cualquier payload irreconocible queda como valor vacío (que normaliza a DO).
type DocumentTypeClaim struct {
	raw string
}

func (c *DocumentTypeClaim) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		c.raw = s
		return nil
	}

	var obj struct {
		Codigo      json.Number `json:"codigo"`
		Descripcion string      `json:"descripcion"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		c.raw = ""
		return nil
	}

	switch {
	case strings.TrimSpace(obj.Descripcion) != "":
		c.raw = obj.Descripcion
	case strings.TrimSpace(obj.Codigo.String()) != "":
		c.raw = mapProviderCode(obj.Codigo.String())
	default:
		c.raw = ""
	}
	return nil
}

func (c DocumentTypeClaim) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.raw)
}

// Raw devuelve el valor textual previo a la canonización. Los códigos no
// mapeados pasan tal cual (pass-through) y terminan en OTRO al canonizar.
func (c DocumentTypeClaim) Raw() string {
	return c.raw
}

// Canonical resuelve el claim al tipo de documento interno.
func (c DocumentTypeClaim) Canonical() DocumentType {
	return Normalize(c.raw)
}

// mapProviderCode traduce los códigos numéricos conocidos de gub.uy a su
// descripción; los desconocidos pasan sin tocar.
func mapProviderCode(code string) string {
	switch code {
	case "1", "68909": // 68909 es el código legacy del broker de gub.uy
		return "CI"
	case "2":
		return "PASAPORTE"
	case "3":
		return "DNI"
	default:
		return code
	}
}
