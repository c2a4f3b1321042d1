package domain

// AugmentationContext is the unit the engine passes through one traversal level.
// Within a collection the same context is reused; only Object and Ephemeral change
// between elements.
type AugmentationContext struct {
	Object    any
	Config    *TypeConfiguration
	Ephemeral *TypeConfiguration
	State     ReadOnlyState
}

// Chain returns the configurations applied to the current object, in order.
func (c *AugmentationContext) Chain() []*TypeConfiguration {
	return c.Config.Chain(c.Ephemeral)
}
