package ports

import (
	"context"

	"github.com/99minutos/gesture-portal/internal/core/domain"
)

// SessionStore keeps the server-side half of a session, keyed by session id.
// Lookup returns domain.ErrSessionNotFound for unknown ids. Delete is idempotent.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Lookup(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
