package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"professores-api/internal/model"
)

type stubVerifier struct {
	claims *model.TokenClaims
	err    error
}

func (v *stubVerifier) VerifyToken(string) (*model.TokenClaims, error) {
	return v.claims, v.err
}

func TestRequireAuthRejections(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		header  string
		message string
	}{
		{"no header", "", "missing token"},
		{"scheme only", "Bearer", "malformed token"},
		{"three parts", "Bearer abc def", "malformed token"},
		{"double space separator", "Bearer  abc", "malformed token"},
		{"tab separator", "Bearer\tabc", "malformed token"},
		{"wrong scheme", "Basic abc", "wrong scheme"},
		{"empty token", "Bearer ", "invalid or expired token"},
		{"failed verification", "Bearer bad-token", "invalid or expired token"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &stubVerifier{err: model.ErrTokenInvalid}
			m := NewAuthMiddleware(verifier)

			downstreamCalled := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				downstreamCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/professores", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			m.RequireAuth(next).ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.False(t, downstreamCalled)

			var body model.MessageResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.message, body.Message)
		})
	}
}

func TestRequireAuthSchemeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, scheme := range []string{"Bearer", "bearer", "BEARER", "bEaReR"} {
		t.Run(scheme, func(t *testing.T) {
			verifier := &stubVerifier{claims: &model.TokenClaims{UserID: "user-1", Email: "a@x.com"}}
			m := NewAuthMiddleware(verifier)

			var seen *model.TokenClaims
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen, _ = ClaimsFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/professores", nil)
			req.Header.Set("Authorization", scheme+" some-token")
			rec := httptest.NewRecorder()

			m.RequireAuth(next).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, seen)
			require.Equal(t, "user-1", seen.UserID)
			require.Equal(t, "a@x.com", seen.Email)
		})
	}
}

func TestClaimsFromContextMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	claims, ok := ClaimsFromContext(req.Context())
	require.False(t, ok)
	require.Nil(t, claims)
}
