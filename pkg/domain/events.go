package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventShapeStart EventType = "shape_start"
	EventShapeEnd   EventType = "shape_end"
	EventResolve    EventType = "resolve"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ShapeEvent brackets one top-level Augment call.
type ShapeEvent struct {
	EventBase
	RootType string        `json:"root_type"`
	Duration time.Duration `json:"duration,omitempty"` // set on EventShapeEnd
	Err      error         `json:"-"`
}

// ResolveEvent is emitted once per type when its effective configuration is built.
type ResolveEvent struct {
	EventBase
	TypeName string `json:"type_name"`
	Declared bool   `json:"declared"`
	Bases    int    `json:"bases"`
}

// LifecycleHooks defines callbacks for engine observability. Every hook is optional.
type LifecycleHooks struct {
	OnShapeStart func(context.Context, *ShapeEvent)
	OnShapeEnd   func(context.Context, *ShapeEvent)
	OnResolve    func(*ResolveEvent)
	// OnNode fires before each root-level node is materialized.
	OnNode func(context.Context, *AugmentationContext)
}

// ChainHooks combines several hook sets; callbacks run in argument order.
func ChainHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range hooks {
		out.OnShapeStart = chain2(out.OnShapeStart, h.OnShapeStart)
		out.OnShapeEnd = chain2(out.OnShapeEnd, h.OnShapeEnd)
		out.OnNode = chain2(out.OnNode, h.OnNode)
		out.OnResolve = chain1(out.OnResolve, h.OnResolve)
	}
	return out
}

func chain2[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chain1[E any](a, b func(E)) func(E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
