package domain

import (
	"fmt"
	"reflect"

	"github.com/aretw0/augmenter/pkg/typeinfo"
)

// TypeConfig is the typed builder over a TypeConfiguration for T. Value functions receive the
// object converted to T, so a configuration declared for an embedded type works on every type
// embedding it.
type TypeConfig[T any] struct {
	tc *TypeConfiguration
}

// NewTypeConfig builds a configuration for T. configure may be nil.
func NewTypeConfig[T any](configure func(*TypeConfig[T])) *TypeConfiguration {
	c := Typed[T](NewTypeConfiguration(reflect.TypeFor[T]()))
	if configure != nil {
		configure(c)
	}
	return c.tc
}

// Typed wraps an existing configuration of T in a typed builder.
func Typed[T any](tc *TypeConfiguration) *TypeConfig[T] {
	if want := typeinfo.Indirect(reflect.TypeFor[T]()); tc.Type() != want {
		panic(fmt.Sprintf("augmenter: configuration of %s used as %s", tc.Type(), want))
	}
	return &TypeConfig[T]{tc: tc}
}

// Configuration returns the underlying configuration.
func (c *TypeConfig[T]) Configuration() *TypeConfiguration { return c.tc }

// AddField declares a field copied verbatim into the output.
func (c *TypeConfig[T]) AddField(name string) *FieldRule {
	return c.tc.AddField(name)
}

// AddNestedField declares a field shaped recursively, see TypeConfiguration.AddNestedField.
func (c *TypeConfig[T]) AddNestedField(name string, extra *TypeConfiguration, addState NestedStateFunc) *FieldRule {
	return c.tc.AddNestedField(name, extra, addState)
}

// ConfigureAdd declares an augmentation that sets name to fn's result.
func (c *TypeConfig[T]) ConfigureAdd(name string, fn func(T, ReadOnlyState) (any, error)) {
	c.tc.ConfigureAdd(name, typedValue(name, fn))
}

// ConfigureAddValue declares an augmentation that always sets name to v.
func (c *TypeConfig[T]) ConfigureAddValue(name string, v any) {
	c.tc.ConfigureAdd(name, func(any, ReadOnlyState) (any, error) { return v, nil })
}

// ConfigureRemove declares an augmentation that deletes name; fn may be nil.
func (c *TypeConfig[T]) ConfigureRemove(name string, fn func(T, ReadOnlyState) (any, error)) {
	if fn == nil {
		c.tc.ConfigureRemove(name, nil)
		return
	}
	c.tc.ConfigureRemove(name, typedValue(name, fn))
}

func typedValue[T any](name string, fn func(T, ReadOnlyState) (any, error)) ValueFunc {
	return func(obj any, state ReadOnlyState) (any, error) {
		v, ok := typeinfo.As[T](obj)
		if !ok {
			return nil, fmt.Errorf("%w: augmentation %q expects %s, got %T", ErrTypeMismatch, name, reflect.TypeFor[T](), obj)
		}
		return fn(v, state)
	}
}
