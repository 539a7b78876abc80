package dnic

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	portdnic "hcen-access/internal/ports/dnic"
)

type fakeTransport struct {
	status int
	body   string

	gotPath  string
	gotQuery string
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.gotPath = req.URL.Path
	f.gotQuery = req.URL.RawQuery
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestClient(t *testing.T, tr http.RoundTripper) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: "http://dnic.test"})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c.WithTransport(tr)
}

func TestClient_GetPerson(t *testing.T) {
	tr := &fakeTransport{
		status: http.StatusOK,
		body: `{
			"tipo_documento": "CI",
			"numero_documento": "41234567",
			"nombres": "Ana María",
			"apellidos": "Pérez",
			"fecha_nacimiento": "1985-07-01"
		}`,
	}
	c := newTestClient(t, tr)

	p, err := c.GetPerson(context.Background(), "CI", "41234567")
	if err != nil {
		t.Fatalf("GetPerson error: %v", err)
	}

	if tr.gotPath != "/personas" {
		t.Fatalf("expected /personas, got %s", tr.gotPath)
	}
	if !strings.Contains(tr.gotQuery, "numero_documento=41234567") {
		t.Fatalf("expected document number in query, got %s", tr.gotQuery)
	}
	if p.FirstName != "Ana María" || p.LastName != "Pérez" {
		t.Fatalf("unexpected person: %+v", p)
	}
	if p.BirthDate.Year() != 1985 || p.BirthDate.Month() != 7 {
		t.Fatalf("unexpected birth date: %v", p.BirthDate)
	}
}

func TestClient_GetPerson_NotFound(t *testing.T) {
	c := newTestClient(t, &fakeTransport{status: http.StatusNotFound, body: `{"error":"no existe"}`})

	_, err := c.GetPerson(context.Background(), "CI", "99999999")
	if !errors.Is(err, portdnic.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestClient_GetPerson_FechaInvalida(t *testing.T) {
	c := newTestClient(t, &fakeTransport{
		status: http.StatusOK,
		body:   `{"numero_documento": "41234567", "fecha_nacimiento": "01/07/1985"}`,
	})

	_, err := c.GetPerson(context.Background(), "CI", "41234567")
	if err == nil {
		t.Fatalf("expected error for malformed fecha_nacimiento")
	}
}
