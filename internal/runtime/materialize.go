package runtime

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/ports"
	"github.com/aretw0/augmenter/pkg/typeinfo"
)

// materialize writes obj through chain into a new output node. Each configuration is applied
// whole, field rules then augmentations, before the next one, so later entries override or
// remove what earlier ones wrote.
func (e *Engine) materialize(ctx context.Context, obj any, chain []*domain.TypeConfiguration, state domain.ReadOnlyState) (any, error) {
	size := 0
	for _, tc := range chain {
		size += len(tc.Fields()) + len(tc.Augments())
	}
	out := e.output.NewBuilder(size)
	root := reflect.ValueOf(obj)

	for _, tc := range chain {
		if err := e.applyConfiguration(ctx, out, obj, root, tc, state); err != nil {
			return nil, err
		}
	}
	return out.Build(), nil
}

func (e *Engine) applyConfiguration(ctx context.Context, out ports.OutputBuilder, obj any, root reflect.Value, tc *domain.TypeConfiguration, state domain.ReadOnlyState) error {
	if len(tc.Fields()) > 0 {
		target, err := upcast(root, tc.Type())
		if err != nil {
			return err
		}

		for _, rule := range tc.Fields() {
			field, ok := typeinfo.FieldByName(tc.Type(), rule.Name)
			if !ok {
				return fmt.Errorf("%w: %s has no field %q", domain.ErrUnknownField, tc.Type(), rule.Name)
			}
			value := readField(field, target)

			if !rule.Nested {
				out.Set(rule.Key(), value)
				continue
			}
			shaped, err := e.shapeNested(ctx, obj, value, tc.Nested(rule.Name), state)
			if err != nil {
				return fmt.Errorf("field %s.%s: %w", tc.Type().Name(), rule.Name, err)
			}
			out.Set(rule.Key(), shaped)
		}
	}

	for _, aug := range tc.Augments() {
		if err := applyAugment(out, obj, aug, state); err != nil {
			return fmt.Errorf("%s: %w", tc.Type(), err)
		}
	}
	return nil
}

// shapeNested shapes the value of a nested field. parent is the object owning the field.
func (e *Engine) shapeNested(ctx context.Context, parent, value any, nc *domain.NestedConfig, state domain.ReadOnlyState) (any, error) {
	if isNil(value) {
		return nil, nil
	}

	var extra *domain.TypeConfiguration
	var addState domain.NestedStateFunc
	if nc != nil {
		extra, addState = nc.Extra, nc.AddState
	}

	var wrapperConfig *domain.TypeConfiguration
	if w, ok := value.(*domain.Wrapper); ok {
		if isNil(w.Object) {
			return nil, nil
		}
		var err error
		if state, err = deriveWrapperState(ctx, state, w); err != nil {
			return nil, err
		}
		value, wrapperConfig = w.Object, w.Config
	}

	desc := e.classifier.Classify(reflect.TypeOf(value))
	switch {
	case desc.IsPrimitive():
		return value, nil

	case desc.IsArray():
		items := indirectValue(reflect.ValueOf(value))
		out := make([]any, 0, items.Len())
		for i := 0; i < items.Len(); i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			elemState, err := deriveNestedState(ctx, state, addState, parent)
			if err != nil {
				return nil, err
			}
			shaped, err := e.shapeElement(ctx, items.Index(i).Interface(), elemState, extra, wrapperConfig)
			if err != nil {
				return nil, err
			}
			out = append(out, shaped)
		}
		return out, nil

	default:
		nestedState, err := deriveNestedState(ctx, state, addState, parent)
		if err != nil {
			return nil, err
		}
		return e.shapeElement(ctx, value, nestedState, extra, wrapperConfig)
	}
}

// shapeElement shapes one nested object with its own configuration followed by extras.
// Without any configuration the value is copied through.
func (e *Engine) shapeElement(ctx context.Context, obj any, state domain.ReadOnlyState, extras ...*domain.TypeConfiguration) (any, error) {
	if isNil(obj) {
		return nil, nil
	}

	if w, ok := obj.(*domain.Wrapper); ok {
		if isNil(w.Object) {
			return nil, nil
		}
		var err error
		if state, err = deriveWrapperState(ctx, state, w); err != nil {
			return nil, err
		}
		obj = w.Object
		extras = append(slices.Clone(extras), w.Config)
	}

	t := reflect.TypeOf(obj)
	if e.classifier.IsPrimitive(t) {
		return obj, nil
	}

	force := slices.ContainsFunc(extras, func(tc *domain.TypeConfiguration) bool { return tc != nil })
	chain := e.store.Resolve(t, force).Chain(extras...)
	if len(chain) == 0 {
		return obj, nil
	}
	return e.materialize(ctx, obj, chain, state)
}

func applyAugment(out ports.OutputBuilder, obj any, aug domain.Augment, state domain.ReadOnlyState) error {
	switch aug.Kind {
	case domain.AugmentAdd:
		value, err := aug.Value(obj, state)
		if err != nil {
			return fmt.Errorf("add %q: %w", aug.Name, err)
		}
		if domain.IsIgnore(value) {
			return nil
		}
		out.Set(aug.Name, value)

	case domain.AugmentRemove:
		if aug.Value != nil {
			value, err := aug.Value(obj, state)
			if err != nil {
				return fmt.Errorf("remove %q: %w", aug.Name, err)
			}
			if domain.IsIgnore(value) {
				return nil
			}
		}
		out.Delete(aug.Name)
	}
	return nil
}

// upcast finds the part of root a configuration of t reads its fields from. An embedded
// pointer left nil yields an invalid value, whose fields all read as nil.
func upcast(root reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v, ok := typeinfo.Upcast(root, t); ok {
		return v, nil
	}
	if slices.Contains(typeinfo.Ancestors(root.Type()), t) {
		return reflect.Value{}, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s cannot be read as %s", domain.ErrTypeMismatch, root.Type(), t)
}

func readField(field typeinfo.Field, target reflect.Value) any {
	v, ok := field.Read(target)
	if !ok || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}
