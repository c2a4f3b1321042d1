package ports

// OutputBuilder accumulates the keys of one shaped node.
// Key order follows first insertion; Set on an existing key keeps its position;
// Delete followed by Set moves the key to the end.
type OutputBuilder interface {
	Set(key string, value any)
	Delete(key string)
	// Build returns the finished container. The builder must not be used afterwards.
	Build() any
}

// OutputFactory creates one builder per shaped node.
type OutputFactory interface {
	NewBuilder(sizeHint int) OutputBuilder
}

// OutputFactoryFunc adapts a function to OutputFactory.
type OutputFactoryFunc func(sizeHint int) OutputBuilder

// NewBuilder calls f.
func (f OutputFactoryFunc) NewBuilder(sizeHint int) OutputBuilder { return f(sizeHint) }
