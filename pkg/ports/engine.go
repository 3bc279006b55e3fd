package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/construct"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/simulate"
)

// Engine is the automata core as seen by the driving adapters (HTTP, MCP).
// It is stateless: every call works on the automata it is given.
type Engine interface {
	// Compile runs a regular expression through the whole construction pipeline.
	Compile(ctx context.Context, pattern string) (*construct.Pipeline, error)

	// Build validates a definition.
	Build(def domain.Definition) (*domain.Automaton, error)

	// Convert turns an automaton into an equivalent one of another kind.
	Convert(ctx context.Context, a *domain.Automaton, target domain.Kind) (*domain.Automaton, error)

	// Minimize returns the minimal DFA, determinizing first when needed.
	Minimize(ctx context.Context, a *domain.Automaton) (*domain.Automaton, error)

	// Simulate runs a over tokenized input.
	Simulate(ctx context.Context, a *domain.Automaton, input []string) (*simulate.Result, error)
}
