package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/gesture-portal/internal/core/domain"
	"github.com/99minutos/gesture-portal/internal/core/ports"
)

// dummyPassword seeds the hash verified for unknown identities so that a
// login for a missing account costs the same as a wrong password.
const dummyPassword = "gesture-portal/unknown-identity"

// AuthService implements signup, login and logout.
type AuthService struct {
	repo      ports.AccountRepository
	hasher    ports.PasswordHasher
	sessions  ports.SessionManager
	logger    zerolog.Logger
	dummyHash string
}

func NewAuthService(repo ports.AccountRepository, hasher ports.PasswordHasher, sessions ports.SessionManager, logger zerolog.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		sessions:  sessions,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" || len(in.Password) > domain.MaxPasswordBytes {
		return nil, domain.ErrInvalidSignup
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		Username:     strings.TrimSpace(in.Username),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			s.logger.Debug().Msg("signup rejected: identity taken")
		}
		return nil, err
	}

	s.logger.Info().Int64("account_id", created.ID).Msg("account created")
	return created, nil
}

// Login verifies the credentials and establishes a session. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, err
		}
		s.hasher.Verify(password, s.dummyHash)
		return "", nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Establish(ctx, account.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int64("account_id", account.ID).Msg("session established")
	return token, account, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}
