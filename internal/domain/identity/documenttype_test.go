package identity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want DocumentType
	}{
		{"codigo corto", "CI", DocumentTypeDO},
		{"minusculas", "ci", DocumentTypeDO},
		{"con acento", "cédula", DocumentTypeDO},
		{"sin acento", "cedula", DocumentTypeDO},
		{"variante verbosa gub.uy", "CI - Cédula de identidad", DocumentTypeDO},
		{"cedula de identidad completa", "Cédula de Identidad", DocumentTypeDO},
		{"letra sola C", "c", DocumentTypeDO},
		{"canonico DO", "DO", DocumentTypeDO},

		{"pasaporte", "Pasaporte", DocumentTypePA},
		{"passport en ingles", "passport", DocumentTypePA},
		{"codigo PA", "PA", DocumentTypePA},
		{"letra sola P", "P", DocumentTypePA},

		{"dni argentino", "DNI", DocumentTypeOTRO},
		{"otro literal", "otro", DocumentTypeOTRO},
		{"desconocido", "xyz123!", DocumentTypeOTRO},
		{"solo simbolos", "!!!", DocumentTypeOTRO},

		{"vacio", "", DocumentTypeDO},
		{"solo espacios", "   ", DocumentTypeDO},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalize_EsTotal(t *testing.T) {
	// Cualquier entrada produce uno de los tres valores canónicos.
	inputs := []string{"", " ", "CI", "garbage", "ñ", "\x00\xff", "1234567"}
	for _, in := range inputs {
		got := Normalize(in)
		assert.Contains(t, []DocumentType{DocumentTypeDO, DocumentTypePA, DocumentTypeOTRO}, got, "input %q", in)
	}
}

func TestDocumentTypeClaim_String(t *testing.T) {
	var c DocumentTypeClaim
	require.NoError(t, json.Unmarshal([]byte(`"CI"`), &c))
	assert.Equal(t, "CI", c.Raw())
	assert.Equal(t, DocumentTypeDO, c.Canonical())
}

func TestDocumentTypeClaim_ObjetoConCodigo(t *testing.T) {
	cases := []struct {
		name          string
		payload       string
		wantRaw       string
		wantCanonical DocumentType
	}{
		{"codigo 1 es CI", `{"codigo": "1"}`, "CI", DocumentTypeDO},
		{"codigo 1 numerico", `{"codigo": 1}`, "CI", DocumentTypeDO},
		{"codigo legacy 68909", `{"codigo": "68909"}`, "CI", DocumentTypeDO},
		{"codigo 2 es pasaporte", `{"codigo": "2"}`, "PASAPORTE", DocumentTypePA},
		{"codigo 3 es dni", `{"codigo": "3"}`, "DNI", DocumentTypeOTRO},
		{"codigo desconocido pasa crudo", `{"codigo": "9"}`, "9", DocumentTypeOTRO},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c DocumentTypeClaim
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &c))
			assert.Equal(t, tc.wantRaw, c.Raw())
			assert.Equal(t, tc.wantCanonical, c.Canonical())
		})
	}
}

func TestDocumentTypeClaim_DescripcionGanaSobreCodigo(t *testing.T) {
	var c DocumentTypeClaim
	require.NoError(t, json.Unmarshal([]byte(`{"codigo": "2", "descripcion": "CI"}`), &c))
	assert.Equal(t, "CI", c.Raw())
	assert.Equal(t, DocumentTypeDO, c.Canonical())
}

func TestDocumentTypeClaim_PayloadIrreconocibleNuncaFalla(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"objeto vacio", `{}`},
		{"array", `[1,2,3]`},
		{"numero suelto", `42`},
		{"null", `null`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c DocumentTypeClaim
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &c))
			// Vacío canoniza a DO (mismo default que la ausencia del claim).
			assert.Equal(t, DocumentTypeDO, c.Canonical())
		})
	}
}

func TestDocumentTypeClaim_MarshalRoundTrip(t *testing.T) {
	var c DocumentTypeClaim
	require.NoError(t, json.Unmarshal([]byte(`{"codigo": "1"}`), &c))

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"CI"`, string(b))
}
