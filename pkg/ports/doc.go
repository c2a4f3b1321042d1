/*
Package ports defines the interfaces that decouple the augmenter engine from its
collaborators.

# Key Interfaces

  - OutputBuilder / OutputFactory: the key/value containers a shaped node is written into
    (see pkg/output for the ordered-map and plain-map implementations).
  - Shaper: the engine as seen by adapters (e.g., HTTP) that shape values per request.
  - StateSource: remote providers of state contributions (e.g., Redis).
*/
package ports
