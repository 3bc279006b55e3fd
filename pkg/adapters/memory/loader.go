package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// NewFromDefinitions creates a Store pre-filled with named definitions.
// This improves DX for tests and embedded catalogs.
func NewFromDefinitions(defs ...domain.Definition) (*Store, error) {
	s := NewStore()
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("definition missing name")
		}
		if _, err := domain.New(def); err != nil {
			return nil, fmt.Errorf("definition %s: %w", def.Name, err)
		}
		_ = s.Save(context.Background(), def.Name, def)
	}
	return s, nil
}
