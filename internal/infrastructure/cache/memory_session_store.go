package cache

import (
	"context"
	"sync"
	"time"

	"doctor-portal/internal/domain/entity"
)

type memoryEntry struct {
	session   entity.Session
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process memory. Sessions do not
// survive a restart and are not shared between instances.
type MemorySessionStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemorySessionStore) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[session.TokenID] = memoryEntry{session: *session, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, tokenID string) (*entity.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[tokenID]
	s.mu.RUnlock()

	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (s *MemorySessionStore) Update(ctx context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[session.TokenID]
	if !ok || !s.now().Before(entry.expiresAt) {
		return ErrSessionNotFound
	}
	entry.session = *session
	s.entries[session.TokenID] = entry
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, tokenID)
	return nil
}

// Len counts stored entries, expired ones included
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
