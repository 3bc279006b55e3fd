package dsl

import "github.com/aretw0/automata/pkg/domain"

// StateBuilder provides a fluent API for configuring a state and its outgoing transitions.
type StateBuilder struct {
	name        string
	builder     *Builder
	start       bool
	accept      bool
	output      *string
	transitions []domain.TransitionDef
}

// Start marks the state as the start state. A later call on another state wins.
func (s *StateBuilder) Start() *StateBuilder {
	for _, other := range s.builder.states {
		other.start = false
	}
	s.start = true
	return s
}

// Accept marks the state as accepting.
func (s *StateBuilder) Accept() *StateBuilder {
	s.accept = true
	return s
}

// Output sets the Moore output of the state.
func (s *StateBuilder) Output(out string) *StateBuilder {
	s.output = &out
	return s
}

// On adds a transition reading symbol into the target state.
func (s *StateBuilder) On(symbol, target string) *StateBuilder {
	return s.add(domain.TransitionDef{Symbol: symbol, To: target})
}

// Epsilon adds a transition that consumes no input.
func (s *StateBuilder) Epsilon(target string) *StateBuilder {
	return s.add(domain.TransitionDef{Symbol: domain.Epsilon, To: target})
}

// Emit adds a Mealy transition producing out.
func (s *StateBuilder) Emit(symbol, target, out string) *StateBuilder {
	return s.add(domain.TransitionDef{Symbol: symbol, To: target, Output: out})
}

// Move adds a PDA transition. An empty pop leaves the stack untouched before pushing;
// the first pushed symbol ends up deepest.
func (s *StateBuilder) Move(symbol, pop, target string, push ...string) *StateBuilder {
	return s.add(domain.TransitionDef{Symbol: symbol, To: target, Pop: pop, Push: push})
}

// Done returns the owning builder, so declarations can keep chaining.
func (s *StateBuilder) Done() *Builder {
	return s.builder
}

func (s *StateBuilder) add(td domain.TransitionDef) *StateBuilder {
	td.From = s.name
	// Targets are declared implicitly, in order of first mention.
	s.builder.State(td.To)
	s.transitions = append(s.transitions, td)
	return s
}
