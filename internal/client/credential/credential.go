// Package credential keeps the short-lived session credential issued at
// sign-in. It is persisted with an absolute expiry; an expired credential
// reads as absent.
package credential

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/recipes/internal/client/kvstore"
	"github.com/dmitrijs2005/recipes/internal/timex"
)

// DefaultTTL matches the cookie lifetime the web client used.
const DefaultTTL = 72 * time.Hour

type Store struct {
	kv    *kvstore.Store
	clock timex.Clock

	mu        sync.RWMutex
	id        string
	expiresAt time.Time
	loaded    bool
}

func NewStore(kv *kvstore.Store, clock timex.Clock) *Store {
	if clock == nil {
		clock = timex.RealClock()
	}
	return &Store{kv: kv, clock: clock}
}

// Set stores id valid for ttl from now.
func (s *Store) Set(ctx context.Context, id string, ttl time.Duration) error {
	expiresAt := s.clock.Now().Add(ttl).UTC()

	err := s.kv.Update(ctx, map[string]string{
		kvstore.KeySessionID:        id,
		kvstore.KeySessionExpiresAt: strconv.FormatInt(expiresAt.Unix(), 10),
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.id, s.expiresAt, s.loaded = id, expiresAt, true
	s.mu.Unlock()
	return nil
}

// Get returns the credential if one is present and not expired.
func (s *Store) Get(ctx context.Context) (string, bool) {
	if err := s.load(ctx); err != nil {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.id == "" || !s.clock.Now().Before(s.expiresAt) {
		return "", false
	}
	return s.id, true
}

// SessionID satisfies api.CredentialSource.
func (s *Store) SessionID(ctx context.Context) (string, bool) {
	return s.Get(ctx)
}

// Clear removes the credential from memory and disk.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.id, s.expiresAt, s.loaded = "", time.Time{}, true
	s.mu.Unlock()

	return s.kv.Remove(ctx, kvstore.KeySessionID, kvstore.KeySessionExpiresAt)
}

func (s *Store) load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	id, err := s.kv.String(ctx, kvstore.KeySessionID, "")
	if err != nil {
		return err
	}
	exp, err := s.kv.String(ctx, kvstore.KeySessionExpiresAt, "")
	if err != nil {
		return err
	}

	var expiresAt time.Time
	if sec, err := strconv.ParseInt(exp, 10, 64); err == nil {
		expiresAt = time.Unix(sec, 0).UTC()
	}

	s.mu.Lock()
	if !s.loaded {
		s.id, s.expiresAt, s.loaded = id, expiresAt, true
	}
	s.mu.Unlock()
	return nil
}
