package schema

import "sort"

// Field describes one entry of a Schema.
type Field struct {
	Type     Type
	Required bool
}

// Required marks a field that must be present.
func Required(t Type) Field { return Field{Type: t, Required: true} }

// Optional marks a field that is only checked when present.
func Optional(t Type) Field { return Field{Type: t} }

// Schema is a map of field names to their expected types.
type Schema map[string]Field

// Validate checks if data conforms to the schema.
// Returns an *AggregateError with all validation failures found, in field order.
// Fields not mentioned in the schema are ignored.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := schema[name]
		value, exists := data[name]
		if !exists || value == nil {
			if field.Required {
				errs = append(errs, &ValidationError{Key: name, Reason: "required"})
			}
			continue
		}
		if err := field.Type.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: name, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
