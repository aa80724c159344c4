package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound indica sessão inexistente, expirada ou destruída.
var ErrNotFound = errors.New("session not found")

// Store guarda o vínculo sessão → conta no lado do servidor, para que
// o logout possa revogar a sessão de verdade.
type Store interface {
	Save(ctx context.Context, sid string, accountID uint, ttl time.Duration) error
	Get(ctx context.Context, sid string) (uint, error)
	Delete(ctx context.Context, sid string) error
}

// MemoryStore implementa Store em memória. Usado nos testes e como
// fallback de desenvolvimento sem redis.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	accountID uint
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(_ context.Context, sid string, accountID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sid] = memoryEntry{
		accountID: accountID,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sid string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sid]
	if !ok {
		return 0, ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, sid)
		return 0, ErrNotFound
	}
	return e.accountID, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sid)
	return nil
}
