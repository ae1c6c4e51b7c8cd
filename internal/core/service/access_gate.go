package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/99minutos/gesture-portal/internal/core/domain"
	"github.com/99minutos/gesture-portal/internal/core/ports"
)

// AccessGate resolves a session token and then loads the account it refers
// to. A session pointing at a missing account is treated as unauthorized.
type AccessGate struct {
	sessions ports.SessionManager
	accounts ports.AccountRepository
}

func NewAccessGate(sessions ports.SessionManager, accounts ports.AccountRepository) *AccessGate {
	return &AccessGate{sessions: sessions, accounts: accounts}
}

func (g *AccessGate) Authorize(ctx context.Context, token string) (*domain.Account, error) {
	accountID, err := g.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	account, err := g.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("authorize: %w", err)
	}
	return account, nil
}
