// Package memstore holds process-local session records in a sharded bigcache.
// Sessions do not survive a restart; use the redis store for that.
package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/99minutos/gesture-portal/internal/core/domain"
)

// noExpiry keeps bigcache from treating live sessions as stale.
const noExpiry = 100 * 365 * 24 * time.Hour

const defaultShards = 64

// SessionStore implements ports.SessionStore in memory.
type SessionStore struct {
	cache *bigcache.BigCache
}

// NewSessionStore builds the cache. shards must be a power of two; zero selects the default.
func NewSessionStore(ctx context.Context, shards int) (*SessionStore, error) {
	if shards <= 0 {
		shards = defaultShards
	}
	cfg := bigcache.DefaultConfig(noExpiry)
	cfg.Shards = shards
	cfg.CleanWindow = 0
	cfg.Verbose = false

	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	return &SessionStore{cache: cache}, nil
}

func (s *SessionStore) Save(_ context.Context, sess domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cache.Set(sess.ID, payload); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, sessionID string) (*domain.Session, error) {
	payload, err := s.cache.Get(sessionID)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	if err := s.cache.Delete(sessionID); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping always succeeds; the store lives in process.
func (s *SessionStore) Ping(context.Context) error {
	return nil
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	return s.cache.Len()
}

func (s *SessionStore) Close() error {
	return s.cache.Close()
}
