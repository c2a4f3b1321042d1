/*
Package domain contains the data model of the augmentation engine.

It is kept free of I/O and of the engine's control flow: it only describes what should
happen to an object, never how the traversal gets there.

# Key Entities

  - TypeConfiguration: ordered field rules and Add/Remove augmentations declared for a type.
  - FieldRule: a field copied verbatim, or shaped recursively when marked nested.
  - NestedConfig: extra configuration and state scoped to one nested field.
  - Wrapper: an object paired with a one-off configuration at the call site.
  - State / ReadOnlyState: layered, copy-on-descend key/value context for value functions.
  - Ignore: the marker a value function returns to skip its augmentation.
*/
package domain
