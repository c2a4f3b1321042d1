package augmenter

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/augmenter/internal/runtime"
	"github.com/aretw0/augmenter/pkg/config"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/ports"
)

// Engine is the high-level entry point of the library.
// It wraps the internal runtime and is safe for concurrent use.
type Engine struct {
	runtime *runtime.Engine
	hooks   domain.LifecycleHooks
	output  ports.OutputFactory
	logger  *slog.Logger
}

var _ ports.Shaper = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithOutput sets the container shaped objects are written into.
// The default is an insertion-ordered map (see pkg/output).
func WithOutput(factory ports.OutputFactory) Option {
	return func(e *Engine) {
		e.output = factory
	}
}

// New initializes an Engine over cfg. cfg must have been built with Build, otherwise
// domain.ErrConfigurationNotBuilt is returned.
func New(cfg *config.Configuration, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so the runtime never logs to a nil logger.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	rt, err := runtime.NewEngine(cfg,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithOutput(eng.output),
	)
	if err != nil {
		return nil, err
	}
	eng.runtime = rt
	return eng, nil
}

// CallOption customizes a single Augment call.
type CallOption func(*runtime.Call)

// WithState adds a call-level state contribution. It runs after the global contribution
// and is visible to this call only.
func WithState(fn domain.StateFunc) CallOption {
	return func(c *runtime.Call) {
		c.AddState = fn
	}
}

// Configure adds configuration for T to this call only. It is applied after the declared
// configuration, and also makes types without a declared configuration shapeable.
// For collections, T is the element type.
func Configure[T any](configure func(*domain.TypeConfig[T])) CallOption {
	tc := domain.NewTypeConfig(configure).Freeze()
	return WithConfiguration(tc)
}

// WithConfiguration is the untyped form of Configure.
func WithConfiguration(tc *domain.TypeConfiguration) CallOption {
	return func(c *runtime.Call) {
		if tc != nil {
			c.Ephemeral = tc.Freeze()
		}
	}
}

// Augment shapes obj into its configured output.
//
// Primitives and objects whose type has no configuration are returned unchanged.
// Collections become []any, configured objects become output containers, and a
// *domain.Wrapper is shaped with its own configuration.
func (e *Engine) Augment(ctx context.Context, obj any, opts ...CallOption) (any, error) {
	var call runtime.Call
	for _, opt := range opts {
		opt(&call)
	}
	return e.runtime.Augment(ctx, obj, call)
}

// Shape implements ports.Shaper.
func (e *Engine) Shape(ctx context.Context, obj any, addState domain.StateFunc) (any, error) {
	return e.runtime.Augment(ctx, obj, runtime.Call{AddState: addState})
}

// Describe returns the effective configuration of every declared type, in declaration order.
func (e *Engine) Describe() []*domain.TypeConfiguration {
	return e.runtime.Store().Describe()
}
