package runtime

import (
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/aretw0/augmenter/pkg/config"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/typeinfo"
)

// Store resolves and caches the effective configuration of every runtime type it sees.
// The cached value is a pure function of the type; whether a caller gets it depends on force.
type Store struct {
	declared  map[reflect.Type]*domain.TypeConfiguration
	order     []reflect.Type
	entries   sync.Map // reflect.Type -> *storeEntry
	onResolve func(*domain.ResolveEvent)
	logger    *slog.Logger
}

type storeEntry struct {
	once     sync.Once
	declared bool
	config   *domain.TypeConfiguration
}

// NewStore creates a store over a built configuration.
func NewStore(cfg *config.Configuration, logger *slog.Logger, onResolve func(*domain.ResolveEvent)) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		declared:  cfg.TypeConfigurations(),
		order:     cfg.Types(),
		onResolve: onResolve,
		logger:    logger,
	}
}

// Resolve returns the effective configuration of t (pointers dereferenced).
// It returns nil when t has no declared configuration of its own and force is false.
// Concurrent first calls for the same type build the configuration exactly once.
func (s *Store) Resolve(t reflect.Type, force bool) *domain.TypeConfiguration {
	t = typeinfo.Indirect(t)
	if t == nil {
		return nil
	}

	v, ok := s.entries.Load(t)
	if !ok {
		v, _ = s.entries.LoadOrStore(t, &storeEntry{})
	}
	entry := v.(*storeEntry)
	entry.once.Do(func() { s.build(t, entry) })

	if !entry.declared && !force {
		return nil
	}
	return entry.config
}

func (s *Store) build(t reflect.Type, entry *storeEntry) {
	declared, ok := s.declared[t]

	var bases []*domain.TypeConfiguration
	for _, ancestor := range typeinfo.Ancestors(t) {
		if base, found := s.declared[ancestor]; found {
			bases = append(bases, base)
		}
	}

	entry.declared = ok
	entry.config = domain.NewEffectiveConfiguration(t, declared, bases)

	s.logger.Debug("type configuration built", "type", t.String(), "declared", ok, "bases", len(bases))
	if s.onResolve != nil {
		s.onResolve(&domain.ResolveEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventResolve},
			TypeName:  t.String(),
			Declared:  ok,
			Bases:     len(bases),
		})
	}
}

// Describe returns the effective configuration of every declared type, in declaration order.
func (s *Store) Describe() []*domain.TypeConfiguration {
	out := make([]*domain.TypeConfiguration, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, s.Resolve(t, false))
	}
	return out
}
