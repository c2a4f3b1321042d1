package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/ports"
)

// Store implements ports.StateSource in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string]any
	mu   sync.RWMutex
}

var _ ports.StateSource = (*Store)(nil)

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]any),
	}
}

// Save merges values into the entry under key.
func (s *Store) Save(ctx context.Context, key string, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[key]
	if !ok {
		entry = make(map[string]any, len(values))
		s.data[key] = entry
	}
	maps.Copy(entry, values)
	return nil
}

// Load returns a copy of the entry under key, or nil when missing.
func (s *Store) Load(ctx context.Context, key string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data[key])
}

// Delete removes the entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.data)), nil
}

// Global returns a contribution copying the entry under key into the state.
func (s *Store) Global(key string) domain.StateFunc {
	return func(ctx context.Context, state domain.State) error {
		s.load(key, state)
		return nil
	}
}

// Nested returns a contribution copying the entry whose key keyFn derives from the parent object.
func (s *Store) Nested(keyFn func(parent any) (string, bool)) domain.NestedStateFunc {
	return func(ctx context.Context, parent any, _ domain.ReadOnlyState, add domain.State) error {
		if key, ok := keyFn(parent); ok {
			s.load(key, add)
		}
		return nil
	}
}

func (s *Store) load(key string, into domain.State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	maps.Copy(into, s.data[key])
}
