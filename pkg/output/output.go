// Package output provides the containers shaped nodes are materialized into.
package output

import (
	"github.com/aretw0/augmenter/pkg/ports"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is the canonical shaped node: an insertion-ordered string-keyed map.
// It marshals to a JSON object with keys in insertion order.
type Object = orderedmap.OrderedMap[string, any]

// Ordered returns the factory of canonical ordered-map nodes.
func Ordered() ports.OutputFactory {
	return ports.OutputFactoryFunc(func(sizeHint int) ports.OutputBuilder {
		return &orderedBuilder{m: orderedmap.New[string, any](orderedmap.WithCapacity[string, any](sizeHint))}
	})
}

type orderedBuilder struct {
	m *Object
}

func (b *orderedBuilder) Set(key string, value any) { b.m.Set(key, value) }
func (b *orderedBuilder) Delete(key string)         { b.m.Delete(key) }
func (b *orderedBuilder) Build() any                { return b.m }

// Map returns the factory of plain map nodes. Key order is not preserved.
func Map() ports.OutputFactory {
	return ports.OutputFactoryFunc(func(sizeHint int) ports.OutputBuilder {
		return mapBuilder(make(map[string]any, sizeHint))
	})
}

type mapBuilder map[string]any

func (b mapBuilder) Set(key string, value any) { b[key] = value }
func (b mapBuilder) Delete(key string)         { delete(b, key) }
func (b mapBuilder) Build() any                { return map[string]any(b) }

// Keys returns the keys of an Object in order.
func Keys(o *Object) []string {
	keys := make([]string, 0, o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// ToMap converts a shaped tree into plain maps and slices, recursively.
// Useful for comparisons in tests and for encoders unaware of Object.
func ToMap(v any) any {
	switch t := v.(type) {
	case *Object:
		m := make(map[string]any, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = ToMap(pair.Value)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = ToMap(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = ToMap(e)
		}
		return s
	default:
		return v
	}
}
