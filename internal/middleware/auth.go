package middleware

import (
	"context"
	"net/http"
	"strings"

	"professores-api/internal/model"
)

type tokenVerifier interface {
	VerifyToken(tokenString string) (*model.TokenClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth gates protected routes on a valid bearer token. Checks run in
// order and the first failure wins: missing header, wrong part count, wrong
// scheme, then signature/expiry verification. The header must be exactly two
// parts separated by a single space; tabs or doubled spaces are malformed.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if strings.TrimSpace(header) == "" {
			writeUnauthorized(w, "missing token")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 {
			writeUnauthorized(w, "malformed token")
			return
		}

		if !strings.EqualFold(parts[0], "Bearer") {
			writeUnauthorized(w, "wrong scheme")
			return
		}

		claims, err := m.verifier.VerifyToken(parts[1])
		if err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromContext(ctx context.Context) (*model.TokenClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.TokenClaims)
	return claims, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = jsonEncode(w, model.MessageResponse{Message: message})
}
