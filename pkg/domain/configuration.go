package domain

import (
	"fmt"
	"reflect"

	"github.com/aretw0/augmenter/pkg/typeinfo"
)

// AugmentKind distinguishes additions from removals.
type AugmentKind int

const (
	AugmentAdd AugmentKind = iota + 1
	AugmentRemove
)

func (k AugmentKind) String() string {
	switch k {
	case AugmentAdd:
		return "add"
	case AugmentRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ValueFunc computes an augmentation value from the node's original object and its state.
// Returning Ignore skips the augmentation.
type ValueFunc func(obj any, state ReadOnlyState) (any, error)

// Augment is one declared Add or Remove operation.
type Augment struct {
	Name string
	Kind AugmentKind
	// Value is required for AugmentAdd and optional for AugmentRemove
	// (a nil Value removes unconditionally).
	Value ValueFunc
}

// FieldRule is one declared field of a type configuration.
type FieldRule struct {
	Name string
	// Nested marks the field's value for recursive shaping. Plain rules copy the value verbatim.
	Nested bool

	key   string
	owner *TypeConfiguration
}

// Key is the output key the field is written under.
func (r *FieldRule) Key() string {
	if r.key != "" {
		return r.key
	}
	return r.Name
}

// As renames the output key of the field.
func (r *FieldRule) As(key string) *FieldRule {
	r.owner.mustBeMutable()
	r.key = key
	return r
}

// NestedConfig is declared per field and scopes extra configuration and state to that
// field's subtree.
type NestedConfig struct {
	// Extra is applied after the field value's own configuration.
	Extra *TypeConfiguration
	// AddState contributes state visible only while shaping the field's value.
	AddState NestedStateFunc
}

// TypeConfiguration holds the field rules and augmentations declared for one type.
// It is mutable until frozen; a frozen configuration is safe for concurrent use.
type TypeConfiguration struct {
	typ      reflect.Type
	fields   []*FieldRule
	augments []Augment
	nested   map[string]*NestedConfig // created on first nested field
	bases    []*TypeConfiguration
	frozen   bool
}

// NewTypeConfiguration creates an empty configuration for t. Pointer types are dereferenced.
func NewTypeConfiguration(t reflect.Type) *TypeConfiguration {
	return &TypeConfiguration{typ: typeinfo.Indirect(t)}
}

// NewEffectiveConfiguration builds the frozen configuration the engine caches for t:
// declared's rules (declared may be nil) preceded by bases, most-base-first.
func NewEffectiveConfiguration(t reflect.Type, declared *TypeConfiguration, bases []*TypeConfiguration) *TypeConfiguration {
	eff := &TypeConfiguration{
		typ:    typeinfo.Indirect(t),
		bases:  bases,
		frozen: true,
	}
	if declared != nil {
		eff.fields = declared.fields
		eff.augments = declared.augments
		eff.nested = declared.nested
	}
	return eff
}

// Type returns the configured type.
func (c *TypeConfiguration) Type() reflect.Type { return c.typ }

// AddField declares a field copied verbatim into the output.
func (c *TypeConfiguration) AddField(name string) *FieldRule {
	c.mustBeMutable()
	rule := &FieldRule{Name: name, owner: c}
	c.fields = append(c.fields, rule)
	return rule
}

// AddNestedField declares a field whose value is shaped recursively. extra and addState are
// optional and apply only to this field's subtree.
func (c *TypeConfiguration) AddNestedField(name string, extra *TypeConfiguration, addState NestedStateFunc) *FieldRule {
	c.mustBeMutable()
	rule := &FieldRule{Name: name, Nested: true, owner: c}
	c.fields = append(c.fields, rule)
	if extra != nil || addState != nil {
		if c.nested == nil {
			c.nested = make(map[string]*NestedConfig)
		}
		c.nested[name] = &NestedConfig{Extra: extra, AddState: addState}
	}
	return rule
}

// ConfigureAdd declares an augmentation that sets name to fn's result.
func (c *TypeConfiguration) ConfigureAdd(name string, fn ValueFunc) {
	c.mustBeMutable()
	if fn == nil {
		panic(fmt.Sprintf("augmenter: ConfigureAdd(%q) requires a value function", name))
	}
	c.augments = append(c.augments, Augment{Name: name, Kind: AugmentAdd, Value: fn})
}

// ConfigureRemove declares an augmentation that deletes name. With a non-nil fn the removal
// is skipped whenever fn returns Ignore.
func (c *TypeConfiguration) ConfigureRemove(name string, fn ValueFunc) {
	c.mustBeMutable()
	c.augments = append(c.augments, Augment{Name: name, Kind: AugmentRemove, Value: fn})
}

// Fields returns the field rules in declaration order. The slice must not be modified.
func (c *TypeConfiguration) Fields() []*FieldRule { return c.fields }

// Augments returns the augmentations in declaration order. The slice must not be modified.
func (c *TypeConfiguration) Augments() []Augment { return c.augments }

// Bases returns the configurations of embedded types, most-base-first.
func (c *TypeConfiguration) Bases() []*TypeConfiguration { return c.bases }

// Nested returns the nested configuration declared for field, or nil.
func (c *TypeConfiguration) Nested(field string) *NestedConfig {
	if c.nested == nil {
		return nil
	}
	return c.nested[field]
}

// Empty reports whether the configuration declares nothing of its own.
func (c *TypeConfiguration) Empty() bool {
	return len(c.fields) == 0 && len(c.augments) == 0
}

// Frozen reports whether the configuration can still be modified.
func (c *TypeConfiguration) Frozen() bool { return c.frozen }

// Freeze makes the configuration immutable, along with the extra configurations of its
// nested fields. It returns c for chaining.
func (c *TypeConfiguration) Freeze() *TypeConfiguration {
	if c.frozen {
		return c
	}
	c.frozen = true
	for _, nc := range c.nested {
		if nc.Extra != nil {
			nc.Extra.Freeze()
		}
	}
	return c
}

// Validate checks that every field rule names a field of the configured type.
func (c *TypeConfiguration) Validate() error {
	for _, rule := range c.fields {
		if _, ok := typeinfo.FieldByName(c.typ, rule.Name); !ok {
			return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, c.typ, rule.Name)
		}
	}
	for _, nc := range c.nested {
		if nc.Extra == nil {
			continue
		}
		if err := nc.Extra.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Chain returns the merged list applied to a node: bases, then c, then each non-nil extra.
// A nil receiver contributes nothing, so Chain can be called on an unresolved configuration.
func (c *TypeConfiguration) Chain(extra ...*TypeConfiguration) []*TypeConfiguration {
	var list []*TypeConfiguration
	if c != nil {
		list = make([]*TypeConfiguration, 0, len(c.bases)+1+len(extra))
		list = append(list, c.bases...)
		list = append(list, c)
	}
	for _, e := range extra {
		if e != nil {
			list = append(list, e)
		}
	}
	return list
}

func (c *TypeConfiguration) String() string {
	return fmt.Sprintf("TypeConfiguration(%s)", c.typ)
}

func (c *TypeConfiguration) mustBeMutable() {
	if c.frozen {
		panic(fmt.Errorf("%w: %s", ErrConfigurationFrozen, c.typ))
	}
}
