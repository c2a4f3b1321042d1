package domain

import (
	"context"
	"maps"
	"slices"
)

// State is the mutable bag state contributions write into.
type State map[string]any

// StateFunc contributes state at the global or call level.
// It may block (e.g. on a remote lookup) and should honor ctx.
type StateFunc func(ctx context.Context, state State) error

// WrapperStateFunc contributes state for a wrapped root object.
type WrapperStateFunc func(ctx context.Context, obj any, state State) error

// NestedStateFunc contributes state scoped to one nested field. It receives the parent
// object and the state visible at the parent, and writes its additions into add.
type NestedStateFunc func(ctx context.Context, parent any, state ReadOnlyState, add State) error

// ReadOnlyState is the immutable view of layered state handed to value functions.
// The zero value is an empty state.
type ReadOnlyState struct {
	values map[string]any
}

// FreezeState wraps s without copying it. The caller must not modify s afterwards.
func FreezeState(s State) ReadOnlyState {
	return ReadOnlyState{values: s}
}

// NewReadOnlyState returns a read-only copy of s.
func NewReadOnlyState(s State) ReadOnlyState {
	return ReadOnlyState{values: maps.Clone(s)}
}

// Get returns the value stored under key.
func (s ReadOnlyState) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Value returns the value stored under key, or nil.
func (s ReadOnlyState) Value(key string) any {
	return s.values[key]
}

// Has reports whether key is present.
func (s ReadOnlyState) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of keys.
func (s ReadOnlyState) Len() int {
	return len(s.values)
}

// Keys returns the keys in sorted order.
func (s ReadOnlyState) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// With derives a new layer: s's keys overlaid with contribution's keys.
// Neither s nor contribution is modified, so siblings deriving from s stay isolated.
func (s ReadOnlyState) With(contribution State) ReadOnlyState {
	if len(contribution) == 0 {
		return s
	}
	next := make(map[string]any, len(s.values)+len(contribution))
	maps.Copy(next, s.values)
	maps.Copy(next, contribution)
	return ReadOnlyState{values: next}
}
