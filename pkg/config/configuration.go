package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/registry"
	"github.com/aretw0/augmenter/pkg/typeinfo"
)

// Configuration is the declarative, per-type configuration an engine is built from.
// It is assembled once at startup, finalized with Build, and read-only afterwards.
type Configuration struct {
	mu          sync.Mutex
	types       map[reflect.Type]*domain.TypeConfiguration
	order       []reflect.Type
	primitives  []reflect.Type
	globalState domain.StateFunc
	names       *registry.Registry
	built       bool
}

// New creates an empty configuration.
func New() *Configuration {
	return &Configuration{
		types: make(map[reflect.Type]*domain.TypeConfiguration),
		names: registry.NewRegistry(),
	}
}

// Configure declares (or extends) the configuration of T. configure may be nil, which
// declares T with an empty configuration.
func Configure[T any](c *Configuration, configure func(*domain.TypeConfig[T])) {
	tc := c.typeConfiguration(reflect.TypeFor[T]())
	if configure != nil {
		configure(domain.Typed[T](tc))
	}
}

// RegisterType registers T under name for configuration files.
func RegisterType[T any](c *Configuration, name string) {
	c.names.Register(name, reflect.TypeFor[T]())
}

// MarkPrimitive makes T pass through the engine untouched.
func MarkPrimitive[T any](c *Configuration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mustBeMutable()
	c.primitives = append(c.primitives, reflect.TypeFor[T]())
}

// ConfigureGlobalState sets the contribution run first on every call.
func (c *Configuration) ConfigureGlobalState(fn domain.StateFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mustBeMutable()
	c.globalState = fn
}

// Build validates every declared configuration and freezes the whole configuration.
// Calling Build again is a no-op.
func (c *Configuration) Build() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return nil
	}
	for _, t := range c.order {
		if err := c.types[t].Validate(); err != nil {
			return fmt.Errorf("invalid configuration for %s: %w", t, err)
		}
	}
	for _, t := range c.order {
		c.types[t].Freeze()
	}
	c.built = true
	return nil
}

// Built reports whether Build succeeded.
func (c *Configuration) Built() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.built
}

// Lookup returns the configuration declared for exactly t (pointers dereferenced), or nil.
func (c *Configuration) Lookup(t reflect.Type) *domain.TypeConfiguration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.types[typeinfo.Indirect(t)]
}

// TypeConfigurations returns a copy of the declared configurations keyed by type.
func (c *Configuration) TypeConfigurations() map[reflect.Type]*domain.TypeConfiguration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[reflect.Type]*domain.TypeConfiguration, len(c.types))
	for t, tc := range c.types {
		out[t] = tc
	}
	return out
}

// Types returns the declared types in declaration order.
func (c *Configuration) Types() []reflect.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]reflect.Type(nil), c.order...)
}

// Primitives returns the types marked primitive.
func (c *Configuration) Primitives() []reflect.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]reflect.Type(nil), c.primitives...)
}

// GlobalState returns the global state contribution, or nil.
func (c *Configuration) GlobalState() domain.StateFunc {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.globalState
}

// Registry returns the type name registry used by configuration files.
func (c *Configuration) Registry() *registry.Registry {
	return c.names
}

func (c *Configuration) typeConfiguration(t reflect.Type) *domain.TypeConfiguration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mustBeMutable()

	t = typeinfo.Indirect(t)
	tc, ok := c.types[t]
	if !ok {
		tc = domain.NewTypeConfiguration(t)
		c.types[t] = tc
		c.order = append(c.order, t)
	}
	return tc
}

func (c *Configuration) mustBeMutable() {
	if c.built {
		panic(domain.ErrConfigurationFrozen)
	}
}
