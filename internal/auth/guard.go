package auth

import (
	"context"
	"net/http"
)

// RoleStore is the single lookup the gate needs: the stored role for an
// email, or "" when the user does not exist.
type RoleStore interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireRole admits the request only when the principal's stored role
// matches one of the required roles. It must sit behind Middleware; an
// absent principal is treated the same as a role mismatch. The lookup is
// one point query per protected request - an accepted extra round-trip,
// no caching.
func RequireRole(store RoleStore, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := PrincipalEmail(r.Context())
			if email == "" {
				http.Error(w, "unauthorized access", http.StatusUnauthorized)
				return
			}

			role, err := store.RoleByEmail(r.Context(), email)
			if err != nil || role == "" {
				http.Error(w, "forbidden access", http.StatusForbidden)
				return
			}

			for _, required := range roles {
				if role == required {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "forbidden access", http.StatusForbidden)
		})
	}
}
