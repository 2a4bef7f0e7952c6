package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenClaims is the decoded payload of an access token.
type TokenClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// RegisteredUser is the public shape returned by POST /register.
type RegisteredUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
