package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// DefinitionStore is a writable catalog of definitions.
type DefinitionStore interface {
	DefinitionSource

	// Save stores def under name, replacing any previous entry.
	Save(ctx context.Context, name string, def domain.Definition) error

	// Delete removes the entry. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
}
