package gubuy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hcen-access/internal/domain/identity"
	"hcen-access/internal/platform/httpclient"
	"hcen-access/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gubuy client not configured")
	ErrUnauthorized  = errors.New("gubuy unauthorized")
	ErrUpstream      = errors.New("gubuy upstream error")
)

// Config del cliente contra ID Uruguay (gub.uy).
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("gubuy: %w", err)
	}
	return &Client{http: hc}, nil
}

// WithTransport inyecta un RoundTripper (para tests).
func (c *Client) WithTransport(tr http.RoundTripper) *Client {
	c.http.WithTransport(tr)
	return c
}

// userInfo es la respuesta del endpoint userinfo de ID Uruguay. El tipo de
// documento puede venir como string o como objeto {codigo, descripcion}.
type userInfo struct {
	TipoDocumento   identity.DocumentTypeClaim `json:"tipo_documento"`
	NumeroDocumento string                     `json:"numero_documento"`
	Email           string                     `json:"email"`
}

// UserInfo resuelve el token contra /userinfo y devuelve los claims con el
// tipo de documento crudo; la normalización corre por cuenta del dominio.
func (c *Client) UserInfo(ctx context.Context, token string) (auth.Claims, error) {
	if c == nil || c.http == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}

	var out userInfo
	err := c.http.GetJSON(ctx, "/userinfo", headers, &out)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) {
			if se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden {
				return auth.Claims{}, ErrUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, se.Code)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	numero := strings.TrimSpace(out.NumeroDocumento)
	if numero == "" {
		return auth.Claims{}, errors.New("gubuy userinfo missing numero_documento")
	}

	return auth.Claims{
		DocumentType:   out.TipoDocumento.Raw(),
		DocumentNumber: numero,
		Email:          strings.TrimSpace(out.Email),
	}, nil
}
