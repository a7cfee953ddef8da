package middleware

import (
	"net/http"
	"strings"

	"github.com/batoolapp/lenses-backend/api/responses"
	pkgAuth "github.com/batoolapp/lenses-backend/pkg/auth"
	"github.com/batoolapp/lenses-backend/pkg/config"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
)

// AdminAuth guards back-office routes. It verifies the bearer token and
// seeds the request context and log fields with the operator's identity.
func AdminAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithAdminID(r.Context(), claims.AdminID.String())
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"admin_id":    claims.AdminID.String(),
					"admin_email": claims.Email,
				})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	raw := strings.TrimSpace(header)
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		raw = strings.TrimSpace(raw[len("bearer "):])
	}
	return raw
}
