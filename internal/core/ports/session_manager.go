package ports

import (
	"context"

	"github.com/99minutos/gesture-portal/internal/core/domain"
)

// SessionManager issues, resolves and invalidates session tokens.
type SessionManager interface {
	Establish(ctx context.Context, accountID int64) (string, error)
	// Resolve returns domain.ErrUnauthorized for absent, malformed, tampered
	// or revoked tokens.
	Resolve(ctx context.Context, token string) (int64, error)
	Invalidate(ctx context.Context, token string) error
}

// AccessGate decides whether a caller holding token may reach a protected operation.
type AccessGate interface {
	Authorize(ctx context.Context, token string) (*domain.Account, error)
}
