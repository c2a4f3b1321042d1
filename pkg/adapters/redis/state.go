package redis

import (
	"context"
	"fmt"

	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// StateLoader implements ports.StateSource with Redis hashes: every field of the hash
// stored under a key becomes a state key holding the field's string value.
type StateLoader struct {
	client *backend.Client
	prefix string
}

var _ ports.StateSource = (*StateLoader)(nil)

// Option configures a StateLoader.
type Option func(*StateLoader)

// WithPrefix sets the namespace prepended to every key (default "augmenter:state:").
func WithPrefix(prefix string) Option {
	return func(l *StateLoader) {
		l.prefix = prefix
	}
}

// New creates a StateLoader connected to addr.
func New(addr string, opts ...Option) *StateLoader {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient creates a StateLoader over an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *StateLoader {
	l := &StateLoader{
		client: client,
		prefix: "augmenter:state:",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Global returns a contribution loading the hash stored under key.
// A missing hash contributes nothing.
func (l *StateLoader) Global(key string) domain.StateFunc {
	return func(ctx context.Context, state domain.State) error {
		return l.load(ctx, key, state)
	}
}

// Nested returns a contribution loading the hash whose key keyFn derives from the parent
// object. When keyFn reports false nothing is loaded.
func (l *StateLoader) Nested(keyFn func(parent any) (string, bool)) domain.NestedStateFunc {
	return func(ctx context.Context, parent any, _ domain.ReadOnlyState, add domain.State) error {
		key, ok := keyFn(parent)
		if !ok {
			return nil
		}
		return l.load(ctx, key, add)
	}
}

// Save stores values as the hash under key, replacing the fields it names.
func (l *StateLoader) Save(ctx context.Context, key string, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	if err := l.client.HSet(ctx, l.prefix+key, values).Err(); err != nil {
		return fmt.Errorf("redis error saving state %q: %w", key, err)
	}
	return nil
}

// Ping checks connectivity.
func (l *StateLoader) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (l *StateLoader) Close() error {
	return l.client.Close()
}

func (l *StateLoader) load(ctx context.Context, key string, into domain.State) error {
	values, err := l.client.HGetAll(ctx, l.prefix+key).Result()
	if err != nil {
		return fmt.Errorf("redis error loading state %q: %w", key, err)
	}
	for k, v := range values {
		into[k] = v
	}
	return nil
}
