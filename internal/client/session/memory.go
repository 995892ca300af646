package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store. The zero value is not usable, use
// NewMemoryStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) AccessToken(_ context.Context) (string, error) {
	return s.get(keyAccessToken), nil
}

func (s *MemoryStore) RefreshToken(_ context.Context) (string, error) {
	return s.get(keyRefreshToken), nil
}

func (s *MemoryStore) SetAccessToken(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(keyAccessToken, token, ttl)
	return nil
}

func (s *MemoryStore) SetRefreshToken(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(keyRefreshToken, token, ttl)
	return nil
}

func (s *MemoryStore) SetPair(_ context.Context, pair models.TokenPair, accessTTL, refreshTTL time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(keyAccessToken, pair.AccessToken, accessTTL)
	s.putLocked(keyRefreshToken, pair.RefreshToken, refreshTTL)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
	return nil
}

func (s *MemoryStore) get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || expired(e.expiresAt, s.now()) {
		return ""
	}
	return e.value
}

func (s *MemoryStore) putLocked(key, value string, ttl time.Duration) {
	s.entries[key] = memoryEntry{value: value, expiresAt: expiry(s.now(), ttl)}
}
