package domain

// Wrapper pairs an object with a one-off configuration and state contribution supplied at
// the call site instead of being declared globally. Wrapping a slice applies Config to every
// element rather than to the slice as a whole.
type Wrapper struct {
	Object   any
	Config   *TypeConfiguration
	AddState WrapperStateFunc
}

// Wrap wraps obj with a configuration for T. For slices, T is the element type.
func Wrap[T any](obj any, configure func(*TypeConfig[T])) *Wrapper {
	return &Wrapper{
		Object: obj,
		Config: NewTypeConfig(configure).Freeze(),
	}
}

// WrapWith wraps obj with an existing configuration.
func WrapWith(obj any, config *TypeConfiguration) *Wrapper {
	if config != nil {
		config.Freeze()
	}
	return &Wrapper{Object: obj, Config: config}
}

// WithState sets the wrapper's state contribution and returns w.
func (w *Wrapper) WithState(fn WrapperStateFunc) *Wrapper {
	w.AddState = fn
	return w
}
