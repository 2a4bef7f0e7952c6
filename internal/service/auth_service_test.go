package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"professores-api/internal/model"
	"professores-api/pkg/apierror"
)

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

func newTestAuthService(t *testing.T) (*AuthService, *memUserStore) {
	t.Helper()

	store := newMemUserStore()
	service, err := NewAuthService("test-secret", time.Hour, 4, store)
	require.NoError(t, err)
	return service, store
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	service, store := newTestAuthService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "a@x.com", user.Email)

	token, err := service.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "a@x.com", claims.Email)

	t.Run("stored hash is not the plaintext", func(t *testing.T) {
		stored, err := store.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.NotEqual(t, "p1", stored.PasswordHash)
	})
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "p1"},
		{"missing password", "a@x.com", ""},
		{"both missing", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Register(ctx, tc.email, tc.password)
			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, 400, apiErr.HTTPStatus)
			require.Equal(t, "email and password are required", apiErr.Message)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	service, store := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, "a@x.com", "p1")
	require.NoError(t, err)

	_, err = service.Register(ctx, "a@x.com", "p2")
	require.ErrorIs(t, err, model.ErrEmailTaken)
	require.Len(t, store.users, 1)
}

func TestLoginDoesNotLeakRegisteredEmails(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, "a@x.com", "correct")
	require.NoError(t, err)

	_, wrongPassword := service.Login(ctx, "a@x.com", "wrong")
	_, unknownEmail := service.Login(ctx, "nobody@x.com", "whatever")

	var errA, errB *apierror.APIError
	require.ErrorAs(t, wrongPassword, &errA)
	require.ErrorAs(t, unknownEmail, &errB)
	require.Equal(t, errA.HTTPStatus, errB.HTTPStatus)
	require.Equal(t, errA.Message, errB.Message)
	require.Equal(t, 401, errA.HTTPStatus)
}

func TestHashPasswordIsSalted(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(t)

	first, err := service.HashPassword("p1")
	require.NoError(t, err)
	second, err := service.HashPassword("p1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		ok, err := service.CheckPassword("p1", hash)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(t)

	hash, err := service.HashPassword("p1")
	require.NoError(t, err)

	t.Run("wrong password is false without error", func(t *testing.T) {
		ok, err := service.CheckPassword("p2", hash)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("malformed hash is an error", func(t *testing.T) {
		_, err := service.CheckPassword("p1", "not-a-bcrypt-hash")
		require.ErrorIs(t, err, model.ErrInvalidHash)
	})
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "user-1",
		"email": "a@x.com",
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = service.VerifyToken(signed)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestVerifyTokenRejectsInvalid(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(t)

	valid, err := service.IssueToken(model.User{ID: "user-1", Email: "a@x.com"})
	require.NoError(t, err)

	wrongSecret := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "user-1",
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signedWithWrongSecret, err := wrongSecret.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":    "user-1",
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for _, tc := range []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"tampered signature", valid + "x"},
		{"wrong secret", signedWithWrongSecret},
		{"none algorithm", noneToken},
		{"empty", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.VerifyToken(tc.token)
			require.ErrorIs(t, err, model.ErrTokenInvalid)
		})
	}
}

func TestTokenExpiryMatchesTTL(t *testing.T) {
	t.Parallel()

	store := newMemUserStore()
	service, err := NewAuthService("test-secret", time.Hour, 4, store)
	require.NoError(t, err)

	before := time.Now()
	token, err := service.IssueToken(model.User{ID: "user-1", Email: "a@x.com"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	exp, err := parsed.Claims.GetExpirationTime()
	require.NoError(t, err)
	require.WithinDuration(t, before.Add(time.Hour), exp.Time, 5*time.Second)
}
