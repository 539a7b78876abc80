package dnic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hcen-access/internal/platform/httpclient"
	portdnic "hcen-access/internal/ports/dnic"
)

// Config del cliente contra el mock de la DNIC.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implementa dnic.PersonLookup contra el servicio HTTP de la DNIC.
type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("dnic: %w", err)
	}
	return &Client{http: hc, apiKey: strings.TrimSpace(cfg.APIKey)}, nil
}

// WithTransport inyecta un RoundTripper (para tests).
func (c *Client) WithTransport(tr http.RoundTripper) *Client {
	c.http.WithTransport(tr)
	return c
}

type personResponse struct {
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	FechaNacimiento string `json:"fecha_nacimiento"`
}

func (c *Client) GetPerson(ctx context.Context, tipoDocumento, numeroDocumento string) (portdnic.Person, error) {
	numeroDocumento = strings.TrimSpace(numeroDocumento)
	if numeroDocumento == "" {
		return portdnic.Person{}, errors.New("dnic: document number required")
	}

	q := url.Values{}
	q.Set("tipo_documento", strings.TrimSpace(tipoDocumento))
	q.Set("numero_documento", numeroDocumento)

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-Api-Key"] = c.apiKey
	}

	var out personResponse
	err := c.http.GetJSON(ctx, "/personas?"+q.Encode(), headers, &out)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return portdnic.Person{}, portdnic.ErrPersonNotFound
		}
		return portdnic.Person{}, fmt.Errorf("dnic: %w", err)
	}

	birth, err := time.Parse("2006-01-02", strings.TrimSpace(out.FechaNacimiento))
	if err != nil {
		return portdnic.Person{}, fmt.Errorf("dnic: invalid fecha_nacimiento %q: %w", out.FechaNacimiento, err)
	}

	return portdnic.Person{
		DocumentType:   strings.TrimSpace(out.TipoDocumento),
		DocumentNumber: strings.TrimSpace(out.NumeroDocumento),
		FirstName:      strings.TrimSpace(out.Nombres),
		LastName:       strings.TrimSpace(out.Apellidos),
		BirthDate:      birth,
	}, nil
}
