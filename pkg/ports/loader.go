package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// DefinitionSource retrieves automaton definitions by name.
type DefinitionSource interface {
	// Get returns the definition stored under name.
	// Returns domain.ErrDefinitionNotFound if there is none.
	Get(ctx context.Context, name string) (domain.Definition, error)

	// List returns the names of all available definitions, sorted.
	List(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying catalog changes.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
