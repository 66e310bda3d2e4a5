package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/tiffinbox/marketplace/internal/auth"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

type claimsKey struct{}

// NewAuthMiddleware verifies the bearer token and stores its claims in the
// request context. A missing token is 401, a bad one is 403.
func NewAuthMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				resp.Error(w, http.StatusUnauthorized, "Authorization token missing", nil)

				return
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			claims, err := auth.ParseToken(raw)
			if err != nil {
				resp.Error(w, http.StatusForbidden, "Invalid authorization token", err)

				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims, or nil outside the
// middleware.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)

	return claims
}
