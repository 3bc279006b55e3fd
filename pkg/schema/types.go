package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "[string]").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elemType.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// MapType validates string-keyed maps whose values share one type.
type MapType struct {
	elemType Type
}

func (t *MapType) Name() string {
	return fmt.Sprintf("{string: %s}", t.elemType.Name())
}

func (t *MapType) Validate(value any) error {
	m, ok := asMap(value)
	if !ok {
		return fmt.Errorf("expected map, got %T", value)
	}
	for _, k := range sortedKeys(m) {
		if err := t.elemType.Validate(m[k]); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}

// ObjectType validates a nested document against its own Schema.
type ObjectType struct {
	schema Schema
}

func (t *ObjectType) Name() string { return "object" }

func (t *ObjectType) Validate(value any) error {
	m, ok := asMap(value)
	if !ok {
		return fmt.Errorf("expected object, got %T", value)
	}
	return Validate(t.schema, m)
}

// OneOfType accepts a value matching any of its alternatives.
type OneOfType struct {
	types []Type
}

func (t *OneOfType) Name() string {
	names := make([]string, len(t.types))
	for i, typ := range t.types {
		names[i] = typ.Name()
	}
	return strings.Join(names, " | ")
}

func (t *OneOfType) Validate(value any) error {
	for _, typ := range t.types {
		if typ.Validate(value) == nil {
			return nil
		}
	}
	return fmt.Errorf("expected %s, got %T", t.Name(), value)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// String creates a string type validator.
func String() Type { return &StringType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type { return &SliceType{elemType: elemType} }

// Map creates a validator for string-keyed maps of the given value type.
func Map(elemType Type) Type { return &MapType{elemType: elemType} }

// Object creates a validator for nested documents.
func Object(s Schema) Type { return &ObjectType{schema: s} }

// OneOf accepts any of the given types.
func OneOf(types ...Type) Type { return &OneOfType{types: types} }

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// asMap accepts both map[string]any and the map[any]any produced by some YAML decoders.
func asMap(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}
