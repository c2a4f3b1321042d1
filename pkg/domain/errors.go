package domain

import "errors"

// ErrConfigurationNotBuilt is returned when an engine is created from a configuration
// whose Build method was never called.
var ErrConfigurationNotBuilt = errors.New("augmenter configuration should be built first using Build()")

// ErrConfigurationFrozen is returned when a built configuration is modified.
var ErrConfigurationFrozen = errors.New("configuration is already built")

// ErrUnknownField is returned when a field rule names a field the type does not have.
var ErrUnknownField = errors.New("unknown field")

// ErrTypeMismatch is returned when a typed value function receives an object it cannot convert.
var ErrTypeMismatch = errors.New("object type mismatch")

// ErrUnknownType is returned when a configuration file names a type that was never registered.
var ErrUnknownType = errors.New("unknown type")
