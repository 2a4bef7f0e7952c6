//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"professores-api/internal/model"
)

func TestRegisterLoginAndProtectedAccess(t *testing.T) {
	env := newTestServer(t)

	registerResp := env.postJSON(t, "/register", map[string]string{"email": "a@x.com", "password": "p1"})
	require.Equal(t, http.StatusCreated, registerResp.StatusCode)

	var registered model.RegisteredUser
	require.NoError(t, json.NewDecoder(registerResp.Body).Decode(&registered))
	require.NotEmpty(t, registered.ID)
	require.Equal(t, "a@x.com", registered.Email)

	loginResp := env.postJSON(t, "/login", map[string]string{"email": "a@x.com", "password": "p1"})
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	var login model.LoginResponse
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	listResp := env.doAuthed(t, http.MethodGet, "/professores", nil, login.Token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	require.JSONEq(t, "[]", string(readBody(t, listResp)))

	noAuthResp := env.doAuthed(t, http.MethodGet, "/professores", nil, "")
	require.Equal(t, http.StatusUnauthorized, noAuthResp.StatusCode)
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	env := newTestServer(t)

	t.Run("missing fields", func(t *testing.T) {
		for _, payload := range []map[string]string{
			{"email": "a@x.com"},
			{"password": "p1"},
			{},
		} {
			resp := env.postJSON(t, "/register", payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		first := env.postJSON(t, "/register", map[string]string{"email": "dup@x.com", "password": "p1"})
		require.Equal(t, http.StatusCreated, first.StatusCode)

		second := env.postJSON(t, "/register", map[string]string{"email": "dup@x.com", "password": "p2"})
		require.Equal(t, http.StatusBadRequest, second.StatusCode)

		var body model.MessageResponse
		require.NoError(t, json.NewDecoder(second.Body).Decode(&body))
		require.Equal(t, "email already registered", body.Message)
		require.Equal(t, 1, env.users.count())
	})
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestServer(t)

	resp := env.postJSON(t, "/register", map[string]string{"email": "a@x.com", "password": "correct"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	wrongPassword := env.postJSON(t, "/login", map[string]string{"email": "a@x.com", "password": "wrong"})
	unknownEmail := env.postJSON(t, "/login", map[string]string{"email": "nobody@x.com", "password": "wrong"})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)
	require.Equal(t, string(readBody(t, wrongPassword)), string(readBody(t, unknownEmail)))
}

func TestLoginMissingFields(t *testing.T) {
	env := newTestServer(t)

	resp := env.postJSON(t, "/login", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMalformedAuthorizationHeaders(t *testing.T) {
	env := newTestServer(t)
	token := env.registerAndLogin(t, "a@x.com", "p1")

	for _, tc := range []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "missing token"},
		{"no token part", "Bearer", "malformed token"},
		{"too many parts", "Bearer " + token + " extra", "malformed token"},
		{"wrong scheme", "Basic " + token, "wrong scheme"},
		{"garbage token", "Bearer garbage", "invalid or expired token"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, env.server.URL+"/professores", nil)
			require.NoError(t, err)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			t.Cleanup(func() { _ = resp.Body.Close() })

			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body model.MessageResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tc.message, body.Message)
		})
	}
}
