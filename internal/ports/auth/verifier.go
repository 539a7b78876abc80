package auth

import "context"

// AuthVerifier valida un token de ID Uruguay y devuelve los claims.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
