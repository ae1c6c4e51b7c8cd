package handler

import (
	"context"

	"github.com/99minutos/gesture-portal/internal/core/domain"
	"github.com/99minutos/gesture-portal/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.Account, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.Account, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

// failingValidator stands in for a validator that breaks for reasons other
// than invalid input.
type failingValidator struct {
	err error
}

func (v failingValidator) Validate(any) error { return v.err }
