// Package session provides the key-value store the chat core keeps its
// per-visitor state in. The production adapter is backed by request cookies;
// tests use the in-memory adapter.
package session

import (
	"sync"
	"time"
)

// Store is a named-value store scoped to one visitor. Values expire after
// their TTL; a missing or expired value reads as absent.
type Store interface {
	Get(name string) (string, bool)
	Set(name, value string, ttl time.Duration)
	Clear(name string)
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store adapter.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[name]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

func (s *MemoryStore) Set(name, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
}

func (s *MemoryStore) Clear(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
}
