package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"

	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFile is returned when a configuration file cannot be decoded or is inconsistent.
var ErrInvalidFile = errors.New("invalid configuration file")

var errAlreadyBuilt = fmt.Errorf("%w: configuration files must be applied before Build", domain.ErrConfigurationFrozen)

// File is the document format of a configuration file (types.yaml).
//
//	types:
//	  Product:
//	    fields:
//	      - Name
//	      - {name: Price, as: price}
//	      - {name: Category, nested: true}
//	    add:
//	      - {name: Kind, value: product}
//	      - {name: Currency, state: currency, default: EUR}
//	    remove:
//	      - Secret
//	      - {name: Internal, unless_state: show_internal}
type File struct {
	Types map[string]TypeSpec `mapstructure:"types"`
}

// TypeSpec declares the configuration of one registered type.
type TypeSpec struct {
	Fields []FieldSpec  `mapstructure:"fields"`
	Add    []AddSpec    `mapstructure:"add"`
	Remove []RemoveSpec `mapstructure:"remove"`
}

// FieldSpec declares a field rule. A bare string decodes as {name: <string>}.
type FieldSpec struct {
	Name   string `mapstructure:"name"`
	As     string `mapstructure:"as"`
	Nested bool   `mapstructure:"nested"`
}

// AddSpec declares an Add augmentation with either a constant value or a state key.
// A missing state key falls back to Default, or skips the augmentation when Default is unset.
type AddSpec struct {
	Name    string `mapstructure:"name"`
	Value   any    `mapstructure:"value"`
	State   string `mapstructure:"state"`
	Default any    `mapstructure:"default"`
}

// RemoveSpec declares a Remove augmentation. A bare string decodes as {name: <string>}.
// With UnlessState the key is kept whenever that state key holds true.
type RemoveSpec struct {
	Name        string `mapstructure:"name"`
	UnlessState string `mapstructure:"unless_state"`
}

// ParseFile decodes a YAML (or JSON, which is valid YAML) configuration document.
// Unknown keys are rejected.
func ParseFile(data []byte) (*File, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	var file File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  nameShorthandHook,
		ErrorUnused: true,
		Result:      &file,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return &file, nil
}

var (
	fieldSpecType  = reflect.TypeOf(FieldSpec{})
	removeSpecType = reflect.TypeOf(RemoveSpec{})
)

func nameShorthandHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to {
	case fieldSpecType:
		return FieldSpec{Name: data.(string)}, nil
	case removeSpecType:
		return RemoveSpec{Name: data.(string)}, nil
	}
	return data, nil
}

// LoadFile reads a configuration file and applies it, see Apply.
func (c *Configuration) LoadFile(path string) error {
	if c.Built() {
		return errAlreadyBuilt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	return c.Apply(data)
}

// Apply decodes a configuration document and declares its rules on the registered types.
// Rules are appended to any configuration already declared in Go for the same type.
// After Build it returns domain.ErrConfigurationFrozen.
func (c *Configuration) Apply(data []byte) error {
	if c.Built() {
		return errAlreadyBuilt
	}
	file, err := ParseFile(data)
	if err != nil {
		return err
	}

	// Resolve every name before touching the configuration, so a bad file changes nothing.
	names := make([]string, 0, len(file.Types))
	for name := range file.Types {
		names = append(names, name)
	}
	slices.Sort(names)

	types := make(map[string]reflect.Type, len(names))
	for _, name := range names {
		t, err := c.names.Lookup(name)
		if err != nil {
			return err
		}
		if err := file.Types[name].validate(name); err != nil {
			return err
		}
		types[name] = t
	}

	for _, name := range names {
		file.Types[name].apply(c.typeConfiguration(types[name]))
	}
	return nil
}

func (s TypeSpec) validate(typeName string) error {
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %s: field without name", ErrInvalidFile, typeName)
		}
	}
	for _, a := range s.Add {
		if a.Name == "" {
			return fmt.Errorf("%w: %s: add without name", ErrInvalidFile, typeName)
		}
		if a.State != "" && a.Value != nil {
			return fmt.Errorf("%w: %s: add %q sets both value and state", ErrInvalidFile, typeName, a.Name)
		}
	}
	for _, r := range s.Remove {
		if r.Name == "" {
			return fmt.Errorf("%w: %s: remove without name", ErrInvalidFile, typeName)
		}
	}
	return nil
}

func (s TypeSpec) apply(tc *domain.TypeConfiguration) {
	for _, f := range s.Fields {
		var rule *domain.FieldRule
		if f.Nested {
			rule = tc.AddNestedField(f.Name, nil, nil)
		} else {
			rule = tc.AddField(f.Name)
		}
		if f.As != "" {
			rule.As(f.As)
		}
	}
	for _, a := range s.Add {
		tc.ConfigureAdd(a.Name, a.valueFunc())
	}
	for _, r := range s.Remove {
		tc.ConfigureRemove(r.Name, r.valueFunc())
	}
}

func (a AddSpec) valueFunc() domain.ValueFunc {
	if a.State == "" {
		value := a.Value
		return func(any, domain.ReadOnlyState) (any, error) { return value, nil }
	}
	key, fallback := a.State, a.Default
	return func(_ any, state domain.ReadOnlyState) (any, error) {
		if v, ok := state.Get(key); ok {
			return v, nil
		}
		if fallback != nil {
			return fallback, nil
		}
		return domain.Ignore, nil
	}
}

func (r RemoveSpec) valueFunc() domain.ValueFunc {
	if r.UnlessState == "" {
		return nil
	}
	key := r.UnlessState
	return func(_ any, state domain.ReadOnlyState) (any, error) {
		if keep, _ := state.Value(key).(bool); keep {
			return domain.Ignore, nil
		}
		return nil, nil
	}
}
