//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"professores-api/internal/config"
	"professores-api/internal/handler"
	"professores-api/internal/middleware"
	"professores-api/internal/model"
	"professores-api/internal/router"
	"professores-api/internal/service"
)

// In-memory stores implementing the service-level store interfaces, so the
// full HTTP stack can be exercised without a database.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]model.User{}}
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[email]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Email]; exists {
		return model.ErrEmailTaken
	}
	s.users[u.Email] = u
	return nil
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type memProfessorStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.Professor
}

func newMemProfessorStore() *memProfessorStore {
	return &memProfessorStore{nextID: 1, items: map[int64]model.Professor{}}
}

func (s *memProfessorStore) List(_ context.Context) ([]model.Professor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Professor, 0, len(s.items))
	for id := int64(1); id < s.nextID; id++ {
		if p, ok := s.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProfessorStore) FindByID(_ context.Context, id int64) (model.Professor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[id]
	if !ok {
		return model.Professor{}, model.ErrProfessorNotFound
	}
	return p, nil
}

func (s *memProfessorStore) Create(_ context.Context, p model.Professor) (model.Professor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	p.UpdatedAt = p.CreatedAt
	s.nextID++
	s.items[p.ID] = p
	return p, nil
}

func (s *memProfessorStore) Update(_ context.Context, p model.Professor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[p.ID]; !ok {
		return model.ErrProfessorNotFound
	}
	s.items[p.ID] = p
	return nil
}

func (s *memProfessorStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return model.ErrProfessorNotFound
	}
	delete(s.items, id)
	return nil
}

type testEnv struct {
	server *httptest.Server
	users  *memUserStore
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	users := newMemUserStore()
	professores := newMemProfessorStore()

	authService, err := service.NewAuthService("test-secret", time.Hour, 4, users)
	require.NoError(t, err)
	professorService := service.NewProfessorService(professores)

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "test-secret",
		JWTTTL:           time.Hour,
		BcryptCost:       4,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Professor: handler.NewProfessorHandler(professorService),
	}, nil)

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)

	return &testEnv{server: server, users: users}
}

func (e *testEnv) postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) registerAndLogin(t *testing.T, email string, password string) string {
	t.Helper()

	registerResp := e.postJSON(t, "/register", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, registerResp.StatusCode)

	loginResp := e.postJSON(t, "/login", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	var parsed model.LoginResponse
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&parsed))
	require.NotEmpty(t, parsed.Token)
	return parsed.Token
}

func (e *testEnv) doAuthed(t *testing.T, method string, path string, payload any, token string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if payload == nil {
		reader = bytes.NewReader([]byte{})
	} else {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return buf.Bytes()
}
