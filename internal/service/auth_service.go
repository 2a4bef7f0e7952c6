package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"professores-api/internal/model"
	"professores-api/pkg/apierror"
)

// UserStore is the slice of the credential store the auth service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) error
}

type AuthService struct {
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	users      UserStore
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration, bcryptCost int, users UserStore) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if tokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", bcryptCost)
	}

	return &AuthService{
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		users:      users,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, email string, password string) (model.RegisteredUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.RegisteredUser{}, apierror.BadRequest("email and password are required")
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return model.RegisteredUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.RegisteredUser{}, err
	}

	return model.RegisteredUser{ID: user.ID, Email: user.Email}, nil
}

// Login authenticates the credentials and returns a signed token. An unknown
// email and a wrong password produce the identical error so callers cannot
// probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", apierror.BadRequest("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return "", apierror.Unauthorized("invalid credentials")
	}
	if err != nil {
		return "", err
	}

	ok, err := s.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apierror.Unauthorized("invalid credentials")
	}

	return s.IssueToken(user)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash. A
// mismatch is (false, nil); only a malformed hash is an error.
func (s *AuthService) CheckPassword(password string, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", model.ErrInvalidHash, err)
}

func (s *AuthService) IssueToken(user model.User) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) VerifyToken(tokenString string) (*model.TokenClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenInvalid
	}

	claims := &model.TokenClaims{}
	claims.UserID, _ = claimsMap["id"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	if claims.UserID == "" {
		return nil, model.ErrTokenInvalid
	}

	return claims, nil
}
