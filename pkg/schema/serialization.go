package schema

import "encoding/json"

type fieldDoc struct {
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
}

// MarshalJSON serializes the schema as a map of field names to type descriptions,
// which is what the API publishes to clients.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	raw := make(map[string]fieldDoc, len(s))
	for key, f := range s {
		doc := fieldDoc{Required: f.Required}
		if f.Type != nil {
			doc.Type = f.Type.Name()
		}
		raw[key] = doc
	}
	return json.Marshal(raw)
}
