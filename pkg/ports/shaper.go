package ports

import (
	"context"

	"github.com/aretw0/augmenter/pkg/domain"
)

// Shaper turns an object graph into its configured output.
// The call-level state contribution is optional.
type Shaper interface {
	Shape(ctx context.Context, obj any, addState domain.StateFunc) (any, error)
}

// StateSource provides a state contribution from an external system.
type StateSource interface {
	// Global returns a contribution usable as the global or call-level state.
	Global(key string) domain.StateFunc
	// Nested returns a contribution scoped to a nested field, keyed by the parent object.
	Nested(keyFn func(parent any) (string, bool)) domain.NestedStateFunc
}
