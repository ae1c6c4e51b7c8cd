package domain

import "errors"

var (
	ErrDuplicateIdentity  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidSignup      = errors.New("email and a password of at most 72 bytes are required")
	ErrSessionNotFound    = errors.New("session not found")
)
