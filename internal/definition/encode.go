package definition

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Encode writes def in the given format. The output parses back to an equal definition.
func Encode(def domain.Definition, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(def, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}
		return data, nil
	case FormatText:
		return encodeText(def), nil
	}
	return nil, fmt.Errorf("unknown definition format %q", format)
}

// Load parses data and builds the automaton in one go.
func Load(data []byte, format Format) (*domain.Automaton, error) {
	def, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	return domain.New(def)
}
