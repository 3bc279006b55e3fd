package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// Builder manages the definition construction.
type Builder struct {
	def    domain.Definition
	order  []string
	states map[string]*StateBuilder
	sigma  bool
}

// New creates a new builder for the given kind.
func New(kind domain.Kind) *Builder {
	return &Builder{
		def:    domain.Definition{Type: kind},
		states: make(map[string]*StateBuilder),
	}
}

// Name sets the label carried by the built automaton.
func (b *Builder) Name(name string) *Builder {
	b.def.Name = name
	return b
}

// Alphabet declares the input alphabet explicitly.
// Without it the alphabet is every non-ε symbol used by a transition.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.def.Alphabet = append(b.def.Alphabet, symbols...)
	b.sigma = true
	return b
}

// Stack sets the initial stack symbol and, optionally, the stack alphabet of a PDA.
func (b *Builder) Stack(initial string, alphabet ...string) *Builder {
	b.def.InitialStackSymbol = initial
	b.def.StackAlphabet = append(b.def.StackAlphabet, alphabet...)
	return b
}

// Acceptance selects the PDA acceptance mode.
func (b *Builder) Acceptance(mode domain.AcceptanceMode) *Builder {
	b.def.Acceptance = mode
	return b
}

// Total makes a missing DFA transition an error instead of a rejection.
func (b *Builder) Total() *Builder {
	b.def.RequireTotal = true
	return b
}

// State declares a state in the definition.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Definition assembles the declarative form without validating it.
func (b *Builder) Definition() domain.Definition {
	def := b.def
	def.States = append([]string(nil), b.order...)
	def.AcceptStates = nil
	def.Transitions = nil
	def.StateOutputs = nil
	if !b.sigma {
		def.Alphabet = nil
	}

	inferred := make(map[string]bool)
	for _, name := range b.order {
		sb := b.states[name]
		if sb.start {
			def.StartState = name
		}
		if sb.accept {
			def.AcceptStates = append(def.AcceptStates, name)
		}
		if sb.output != nil {
			if def.StateOutputs == nil {
				def.StateOutputs = make(map[string]string)
			}
			def.StateOutputs[name] = *sb.output
		}
		for _, td := range sb.transitions {
			if !domain.IsEpsilon(td.Symbol) {
				inferred[td.Symbol] = true
			}
			def.Transitions = append(def.Transitions, td)
		}
	}
	if !b.sigma {
		for s := range inferred {
			def.Alphabet = append(def.Alphabet, s)
		}
		sort.Strings(def.Alphabet)
	}
	return def
}

// Build validates the definition and returns the automaton.
func (b *Builder) Build() (*domain.Automaton, error) {
	a, err := domain.New(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", b.def.Type, err)
	}
	return a, nil
}
