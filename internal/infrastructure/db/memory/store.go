// Package memory holds in-process implementations of the storage ports, used
// when Redis or MongoDB are not configured and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// Store implements ports.LocalStore in memory.
type Store struct {
	mu     sync.RWMutex
	scopes map[string]map[string][]byte
}

func NewStore() *Store {
	return &Store{scopes: make(map[string]map[string][]byte)}
}

func (s *Store) Get(_ context.Context, scope, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.scopes[scope][key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) Set(_ context.Context, scope, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.scopes[scope]
	if !ok {
		m = make(map[string][]byte)
		s.scopes[scope] = m
	}
	v := make([]byte, len(value))
	copy(v, value)
	m[key] = v
	return nil
}

func (s *Store) Delete(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.scopes[scope], key)
	return nil
}

func (s *Store) Keys(_ context.Context, scope string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.scopes[scope]))
	for k := range s.scopes[scope] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Clear(_ context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.scopes, scope)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }
