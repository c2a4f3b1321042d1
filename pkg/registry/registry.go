package registry

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/typeinfo"
)

// Registry maps stable names to Go types, so configuration files can refer to types
// without importing them.
type Registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]reflect.Type),
	}
}

// Register adds a type to the registry under name. Pointer types are dereferenced.
// If a type with the same name exists, it is overwritten.
func (r *Registry) Register(name string, t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = typeinfo.Indirect(t)
}

// Register registers T under name.
func Register[T any](r *Registry, name string) {
	r.Register(name, reflect.TypeFor[T]())
}

// Lookup returns the type registered under name.
// Returns domain.ErrUnknownType if the name is not registered.
func (r *Registry) Lookup(name string) (reflect.Type, error) {
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownType, name)
	}

	return t, nil
}

// NameOf returns the name a type was registered under.
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	t = typeinfo.Indirect(t)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, rt := range r.types {
		if rt == t {
			return name, true
		}
	}
	return "", false
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
