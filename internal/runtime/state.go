package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/augmenter/pkg/domain"
)

// buildRootState runs the global, call and wrapper contributions in that order over one
// accumulating map. Every contribution is optional.
func buildRootState(ctx context.Context, global, call domain.StateFunc, wrapper *domain.Wrapper) (domain.ReadOnlyState, error) {
	state := domain.State{}

	if global != nil {
		if err := global(ctx, state); err != nil {
			return domain.ReadOnlyState{}, fmt.Errorf("global state contribution failed: %w", err)
		}
	}
	if call != nil {
		if err := call(ctx, state); err != nil {
			return domain.ReadOnlyState{}, fmt.Errorf("call state contribution failed: %w", err)
		}
	}
	if wrapper != nil && wrapper.AddState != nil {
		if err := wrapper.AddState(ctx, wrapper.Object, state); err != nil {
			return domain.ReadOnlyState{}, fmt.Errorf("wrapper state contribution failed: %w", err)
		}
	}

	return domain.FreezeState(state), nil
}

// deriveNestedState layers fn's contribution over base. Without fn, base is returned as is.
func deriveNestedState(ctx context.Context, base domain.ReadOnlyState, fn domain.NestedStateFunc, parent any) (domain.ReadOnlyState, error) {
	if fn == nil {
		return base, nil
	}
	add := domain.State{}
	if err := fn(ctx, parent, base, add); err != nil {
		return domain.ReadOnlyState{}, fmt.Errorf("nested state contribution failed: %w", err)
	}
	return base.With(add), nil
}

// deriveWrapperState layers the contribution of a wrapper found below the root over base.
func deriveWrapperState(ctx context.Context, base domain.ReadOnlyState, w *domain.Wrapper) (domain.ReadOnlyState, error) {
	if w.AddState == nil {
		return base, nil
	}
	add := domain.State{}
	if err := w.AddState(ctx, w.Object, add); err != nil {
		return domain.ReadOnlyState{}, fmt.Errorf("wrapper state contribution failed: %w", err)
	}
	return base.With(add), nil
}
