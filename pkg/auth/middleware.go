package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(token string) (*AdminClaims, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A missing header or any other scheme yields ErrMissingToken.
func BearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", ErrMissingToken
	}
	return h[len(bearerPrefix):], nil
}

// RequireAdmin rejects requests without a valid admin token before they reach
// next, and stores the verified claims in the request context.
func RequireAdmin(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := BearerToken(r)
			if err != nil {
				unauthorized(w, "Unauthorized")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := WithAdminClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
