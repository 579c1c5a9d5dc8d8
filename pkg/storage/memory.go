package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in-process. It is the test backend
// and the zero-dependency dev fallback.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	value, ok := values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.sessions[sessionID]
	if !ok {
		values = make(map[string][]byte)
		s.sessions[sessionID] = values
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	values[key] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if values, ok := s.sessions[sessionID]; ok {
		delete(values, key)
	}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
