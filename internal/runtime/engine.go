package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/aretw0/augmenter/pkg/config"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/output"
	"github.com/aretw0/augmenter/pkg/ports"
	"github.com/aretw0/augmenter/pkg/typeinfo"
)

var wrapperType = reflect.TypeFor[*domain.Wrapper]()

// Engine shapes object graphs according to a built configuration.
// It is safe for concurrent use; the configuration store is its only shared mutable state.
type Engine struct {
	store       *Store
	classifier  *typeinfo.Classifier
	globalState domain.StateFunc
	output      ports.OutputFactory
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithOutput sets the factory of output nodes (default: output.Ordered).
func WithOutput(factory ports.OutputFactory) EngineOption {
	return func(e *Engine) {
		if factory != nil {
			e.output = factory
		}
	}
}

// Call carries the per-call inputs of Augment. Both fields are optional.
type Call struct {
	// AddState contributes call-level state, after the global contribution.
	AddState domain.StateFunc
	// Ephemeral is applied last, for this call only. It takes the place of a wrapper's configuration.
	Ephemeral *domain.TypeConfiguration
}

// NewEngine creates an engine. The configuration must have been built.
func NewEngine(cfg *config.Configuration, opts ...EngineOption) (*Engine, error) {
	if cfg == nil || !cfg.Built() {
		return nil, domain.ErrConfigurationNotBuilt
	}

	e := &Engine{
		globalState: cfg.GlobalState(),
		output:      output.Ordered(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.classifier = typeinfo.NewClassifier(
		typeinfo.WithPrimitives(cfg.Primitives()...),
		typeinfo.WithWrapperType(wrapperType),
	)
	e.store = NewStore(cfg, e.logger, e.hooks.OnResolve)
	return e, nil
}

// Store returns the engine's configuration store.
func (e *Engine) Store() *Store { return e.store }

// Augment shapes obj. Primitives and objects without configuration are returned unchanged,
// arrays become []any, and configured objects become output nodes. Any error aborts the
// whole call; no partial result is returned.
func (e *Engine) Augment(ctx context.Context, obj any, call Call) (any, error) {
	start := time.Now()
	rootType := fmt.Sprintf("%T", obj)
	if e.hooks.OnShapeStart != nil {
		e.hooks.OnShapeStart(ctx, &domain.ShapeEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventShapeStart},
			RootType:  rootType,
		})
	}

	result, err := e.augment(ctx, obj, call)
	if err != nil {
		e.logger.DebugContext(ctx, "augmentation failed", "type", rootType, "error", err)
		result = nil
	}

	if e.hooks.OnShapeEnd != nil {
		e.hooks.OnShapeEnd(ctx, &domain.ShapeEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventShapeEnd},
			RootType:  rootType,
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	return result, err
}

func (e *Engine) augment(ctx context.Context, obj any, call Call) (any, error) {
	if isNil(obj) {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	desc := e.classifier.Classify(reflect.TypeOf(obj))
	if desc.IsPrimitive() {
		return obj, nil
	}

	var wrapper *domain.Wrapper
	target := obj
	if desc.IsWrapper() {
		wrapper = obj.(*domain.Wrapper)
		if isNil(wrapper.Object) {
			return nil, nil
		}
		target = wrapper.Object
		desc = e.classifier.Classify(reflect.TypeOf(target))
		if desc.IsPrimitive() {
			return target, nil
		}
	}

	force := wrapper != nil || call.Ephemeral != nil
	perElement := desc.IsArray() && e.resolvePerElement(desc.Elem)

	var tc *domain.TypeConfiguration
	if !perElement {
		configType := desc.Type
		if desc.IsArray() {
			configType = desc.Elem
		}
		tc = e.store.Resolve(configType, force)
		if tc == nil && call.Ephemeral == nil {
			return obj, nil
		}
	}

	if perElement && wrapper == nil && call.Ephemeral == nil && !e.anyElementConfigured(reflect.ValueOf(target)) {
		return obj, nil
	}

	state, err := buildRootState(ctx, e.globalState, call.AddState, wrapper)
	if err != nil {
		return nil, err
	}
	actx := &domain.AugmentationContext{Config: tc, State: state}

	if !desc.IsArray() {
		actx.Object = obj
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return e.augmentNode(ctx, actx, call, false)
	}

	if wrapper != nil {
		actx.Ephemeral = wrapper.Config
	}
	items := indirectValue(reflect.ValueOf(target))
	out := make([]any, 0, items.Len())
	for i := 0; i < items.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		actx.Object = items.Index(i).Interface()
		shaped, err := e.augmentNode(ctx, actx, call, perElement)
		if err != nil {
			return nil, err
		}
		out = append(out, shaped)
	}
	return out, nil
}

// augmentNode shapes the single object of actx. actx is shared across the elements of one
// collection and is not modified.
func (e *Engine) augmentNode(ctx context.Context, actx *domain.AugmentationContext, call Call, perElement bool) (any, error) {
	node := *actx
	if isNil(node.Object) {
		return nil, nil
	}

	if w, ok := node.Object.(*domain.Wrapper); ok {
		if isNil(w.Object) {
			return nil, nil
		}
		if perElement {
			// Wrappers inside a collection carry their own state and may wrap collections.
			return e.shapeNested(ctx, nil, w, nil, node.State)
		}
		node.Object = w.Object
		node.Ephemeral = w.Config
	}

	if call.Ephemeral != nil {
		node.Ephemeral = call.Ephemeral
	}

	if perElement {
		t := reflect.TypeOf(node.Object)
		if e.classifier.IsPrimitive(t) {
			return node.Object, nil
		}
		node.Config = e.store.Resolve(t, node.Ephemeral != nil)
		if node.Config == nil && node.Ephemeral == nil {
			return node.Object, nil
		}
	}

	if e.hooks.OnNode != nil {
		e.hooks.OnNode(ctx, &node)
	}
	return e.materialize(ctx, node.Object, node.Chain(), node.State)
}

// anyElementConfigured reports whether some element of a per-element collection would be
// shaped: a wrapper, or an object whose type has a declared configuration.
func (e *Engine) anyElementConfigured(collection reflect.Value) bool {
	items := indirectValue(collection)
	for i := 0; i < items.Len(); i++ {
		el := items.Index(i).Interface()
		if isNil(el) {
			continue
		}
		if _, ok := el.(*domain.Wrapper); ok {
			return true
		}
		t := reflect.TypeOf(el)
		if !e.classifier.IsPrimitive(t) && e.store.Resolve(t, false) != nil {
			return true
		}
	}
	return false
}

// resolvePerElement reports whether the configuration of a collection's elements can only be
// known from each element's dynamic type.
func (e *Engine) resolvePerElement(elem reflect.Type) bool {
	if elem.Kind() == reflect.Interface {
		return true
	}
	d := e.classifier.Classify(elem)
	return d.IsWrapper() || d.IsPrimitive()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func indirectValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}
