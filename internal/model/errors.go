package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	// Password hash related errors
	ErrInvalidHash = errors.New("invalid password hash")

	// Professor related errors
	ErrProfessorNotFound = errors.New("professor not found")
)
