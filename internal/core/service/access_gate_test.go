package service

import (
	"context"
	"errors"
	"testing"

	"github.com/99minutos/gesture-portal/internal/core/domain"
)

func TestAccessGate_Authorize(t *testing.T) {
	repo := newStubAccountRepo()
	sessions := NewSessionService(newStubSessionStore(), "secret")
	gate := NewAccessGate(sessions, repo)

	account, _ := repo.Create(context.Background(), &domain.Account{Email: "a@x.com", Username: "a"})
	token, _ := sessions.Establish(context.Background(), account.ID)

	got, err := gate.Authorize(context.Background(), token)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if got.Email != "a@x.com" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestAccessGate_NoSession(t *testing.T) {
	gate := NewAccessGate(NewSessionService(newStubSessionStore(), "secret"), newStubAccountRepo())

	if _, err := gate.Authorize(context.Background(), ""); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAccessGate_MissingAccount(t *testing.T) {
	repo := newStubAccountRepo()
	sessions := NewSessionService(newStubSessionStore(), "secret")
	gate := NewAccessGate(sessions, repo)

	account, _ := repo.Create(context.Background(), &domain.Account{Email: "gone@x.com"})
	token, _ := sessions.Establish(context.Background(), account.ID)
	repo.delete("gone@x.com")

	if _, err := gate.Authorize(context.Background(), token); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAccessGate_StoreFailure(t *testing.T) {
	repo := newStubAccountRepo()
	sessions := NewSessionService(newStubSessionStore(), "secret")
	gate := NewAccessGate(sessions, repo)

	account, _ := repo.Create(context.Background(), &domain.Account{Email: "a@x.com"})
	token, _ := sessions.Establish(context.Background(), account.ID)

	boom := errors.New("db down")
	repo.findErr = boom
	if _, err := gate.Authorize(context.Background(), token); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
