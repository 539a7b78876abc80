package gubuy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hcen-access/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier contra ID Uruguay. El tenant no
// viene en el token: lo aporta el header X-Tenant-ID vía middleware.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.UserInfo(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("gubuy verify failed: %w", err)
	}

	if strings.TrimSpace(claims.DocumentNumber) == "" {
		return auth.Claims{}, errors.New("gubuy claims missing document number")
	}

	return claims, nil
}
