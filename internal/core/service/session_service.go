package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/99minutos/gesture-portal/internal/core/domain"
	"github.com/99minutos/gesture-portal/internal/core/ports"
)

// sessionClaims is the payload of a session token. The signature makes the
// token tamper-evident; the sid makes it revocable.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionService implements ports.SessionManager on top of a SessionStore.
type SessionService struct {
	store  ports.SessionStore
	secret []byte
	now    func() time.Time
}

func NewSessionService(store ports.SessionStore, secret string) *SessionService {
	return &SessionService{store: store, secret: []byte(secret), now: time.Now}
}

// Establish records a new session for accountID and returns its signed token.
func (s *SessionService) Establish(ctx context.Context, accountID int64) (string, error) {
	sess := domain.Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("establish session: %w", err)
	}

	claims := sessionClaims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(accountID, 10),
			IssuedAt: jwt.NewNumericDate(sess.CreatedAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Resolve maps a presented token back to its account id.
func (s *SessionService) Resolve(ctx context.Context, token string) (int64, error) {
	claims, accountID, ok := s.parse(token)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	sess, err := s.store.Lookup(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return 0, domain.ErrUnauthorized
		}
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	if sess.AccountID != accountID {
		return 0, domain.ErrUnauthorized
	}
	return accountID, nil
}

// Invalidate revokes the session behind token. Unknown or malformed tokens
// are ignored.
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	claims, _, ok := s.parse(token)
	if !ok {
		return nil
	}
	if err := s.store.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

func (s *SessionService) parse(token string) (*sessionClaims, int64, bool) {
	if token == "" {
		return nil, 0, false
	}

	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.SessionID == "" {
		return nil, 0, false
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || accountID <= 0 {
		return nil, 0, false
	}
	return claims, accountID, true
}
