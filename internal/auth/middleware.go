package auth

import (
	"context"
	"net/http"
)

type contextKey string

const emailKey contextKey = "principal_email"

// Middleware verifies the bearer token and stores the principal's email in
// the request context. Missing header, malformed header and failed
// verification all produce the same response body so a caller cannot tell
// which check rejected them.
func Middleware(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, err := ExtractTokenFromRequest(r)
			if err != nil {
				http.Error(w, "unauthorized access", http.StatusUnauthorized)
				return
			}

			email, err := verifier.Verify(r.Context(), rawToken)
			if err != nil {
				http.Error(w, "unauthorized access", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), emailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalEmail extracts the verified email in handlers.
func PrincipalEmail(ctx context.Context) string {
	if email, ok := ctx.Value(emailKey).(string); ok {
		return email
	}
	return ""
}
