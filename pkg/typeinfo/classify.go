package typeinfo

import (
	"encoding/json"
	"reflect"
	"time"
)

// Kind is the coarse category the engine branches on.
type Kind int

const (
	_ Kind = iota // zero value is an invalid Kind

	KindPrimitive
	KindWrapper
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindWrapper:
		return "wrapper"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Descriptor is the runtime classification of a type.
type Descriptor struct {
	Type reflect.Type
	Kind Kind
	// Elem is the element type of an array-like type, nil otherwise.
	Elem reflect.Type
}

func (d Descriptor) IsPrimitive() bool { return d.Kind == KindPrimitive }
func (d Descriptor) IsArray() bool     { return d.Kind == KindArray }
func (d Descriptor) IsWrapper() bool   { return d.Kind == KindWrapper }
func (d Descriptor) IsObject() bool    { return d.Kind == KindObject }

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	numberType   = reflect.TypeOf(json.Number(""))
	bytesType    = reflect.TypeOf([]byte(nil))
)

// Classifier classifies types. It is immutable once created and safe for concurrent use.
type Classifier struct {
	primitives map[reflect.Type]struct{}
	wrapper    reflect.Type
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithPrimitives marks additional types as primitive.
func WithPrimitives(types ...reflect.Type) ClassifierOption {
	return func(c *Classifier) {
		for _, t := range types {
			if t != nil {
				c.primitives[t] = struct{}{}
			}
		}
	}
}

// WithWrapperType sets the type classified as KindWrapper.
func WithWrapperType(t reflect.Type) ClassifierOption {
	return func(c *Classifier) {
		c.wrapper = t
	}
}

// NewClassifier creates a Classifier.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		primitives: make(map[reflect.Type]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the Descriptor of t. A nil type (the type of an untyped nil) is primitive.
func (c *Classifier) Classify(t reflect.Type) Descriptor {
	if t == nil || c.isPrimitive(t) {
		return Descriptor{Type: t, Kind: KindPrimitive}
	}

	if c.wrapper != nil && t == c.wrapper {
		return Descriptor{Type: t, Kind: KindWrapper}
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return Descriptor{Type: t, Kind: KindArray, Elem: t.Elem()}
	case reflect.Ptr:
		if elem := t.Elem(); elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array {
			return Descriptor{Type: t, Kind: KindArray, Elem: elem.Elem()}
		}
	}

	return Descriptor{Type: t, Kind: KindObject}
}

// IsPrimitive reports whether t is classified as primitive.
func (c *Classifier) IsPrimitive(t reflect.Type) bool {
	return t == nil || c.isPrimitive(t)
}

func (c *Classifier) isPrimitive(t reflect.Type) bool {
	if _, ok := c.primitives[t]; ok {
		return true
	}

	switch t {
	case timeType, durationType, numberType, bytesType:
		return true
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	case reflect.Slice:
		// Named byte slices (e.g. json.RawMessage) behave like []byte.
		return t.Elem().Kind() == reflect.Uint8
	case reflect.Ptr:
		return c.isPrimitive(t.Elem())
	}

	return false
}
