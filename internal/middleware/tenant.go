package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const tenantKey ctxKey = "tenant_id"

// TenantID exige el header X-Tenant-ID (la clínica solicitante) y lo deja
// en el contexto. Se aplica solo a las rutas federadas de acceso.
func TenantID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Tenant-ID")
		if raw == "" {
			log.Warn().Msg("missing X-Tenant-ID header")
			http.Error(w, "X-Tenant-ID header is required", http.StatusBadRequest)
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil {
			log.Warn().Err(err).Str("tenant_id", raw).Msg("invalid tenant id")
			http.Error(w, "invalid X-Tenant-ID format", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), tenantKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID extrae el tenant del contexto.
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(tenantKey).(uuid.UUID)
	return tenantID, ok
}
