/*
Package typeinfo answers the reflective questions the augmentation engine asks about Go types.

It is deliberately independent from the engine's configuration cache: everything here is a pure
function of a reflect.Type, memoized centrally where the answer is expensive to compute.

# Classification

A Classifier sorts a type into one of four kinds, in this order of precedence:

  - Primitive: passed through untouched (numbers, booleans, strings, []byte, time.Time,
    time.Duration, json.Number, pointers to those, and any type marked primitive explicitly).
  - Wrapper: the ad-hoc wrapper type registered with WithWrapperType.
  - Array: slices and arrays (the element type is recorded).
  - Object: everything else.

# Fields and Embedding

Fields enumerates the exported fields of a struct type, promoted fields of embedded structs
included, in a stable order. Ancestors lists the embedded struct types of a type, most-base-first,
which is how the engine models inheritance. Upcast and As convert a value to one of its embedded
types.
*/
package typeinfo
