package construct

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// MealyToMoore builds one Moore state per (Mealy state, incoming output) pair observed
// on a transition, plus a start state carrying a blank output. Pair states are named
// "q/o" and the start state "q/". For every input the Moore machine emits, after its
// initial blank output, the same sequence as the Mealy machine.
func MealyToMoore(m *domain.Automaton) (*domain.Automaton, error) {
	if m.Kind() != domain.KindMealy {
		return nil, fmt.Errorf("mealy to moore from %s: %w", m.Kind(), domain.ErrKindMismatch)
	}

	type pair struct {
		state  domain.StateID
		output string
	}

	taken := make(map[string]bool)
	names := make(map[pair]string)
	var order []pair
	intern := func(p pair) string {
		if name, ok := names[p]; ok {
			return name
		}
		name := uniqueName(taken, m.Name(p.state)+"/"+p.output)
		names[p] = name
		order = append(order, p)
		return name
	}

	start := pair{m.Start(), ""}
	intern(start)
	transitions := m.Transitions()
	for _, t := range transitions {
		intern(pair{t.To, t.Output})
	}

	def := domain.Definition{
		Type:           domain.KindMoore,
		Name:           m.Label(),
		Alphabet:       m.Alphabet(),
		StartState:     names[start],
		OutputAlphabet: m.OutputAlphabet(),
		StateOutputs:   make(map[string]string, len(order)),
	}
	for _, p := range order {
		name := names[p]
		def.States = append(def.States, name)
		def.StateOutputs[name] = p.output
		for _, t := range transitions {
			if t.From != p.state {
				continue
			}
			def.Transitions = append(def.Transitions, domain.TransitionDef{
				From:   name,
				Symbol: t.Symbol,
				To:     names[pair{t.To, t.Output}],
			})
		}
	}
	return domain.New(def)
}

// MooreToMealy keeps the states of m and labels each transition with the output of its
// target state. A transition into a state with a blank output cannot be expressed and
// fails with ErrMalformedAutomaton.
func MooreToMealy(m *domain.Automaton) (*domain.Automaton, error) {
	if m.Kind() != domain.KindMoore {
		return nil, fmt.Errorf("moore to mealy from %s: %w", m.Kind(), domain.ErrKindMismatch)
	}

	def := domain.Definition{
		Type:           domain.KindMealy,
		Name:           m.Label(),
		Alphabet:       m.Alphabet(),
		StartState:     m.Name(m.Start()),
		OutputAlphabet: m.OutputAlphabet(),
	}
	for _, s := range m.States() {
		def.States = append(def.States, s.Name)
	}
	for _, t := range m.Transitions() {
		out := m.Output(t.To)
		if out == "" {
			return nil, domain.Malformed(m.Name(t.To), t.Symbol, "target of a transition has a blank output")
		}
		def.Transitions = append(def.Transitions, domain.TransitionDef{
			From:   m.Name(t.From),
			Symbol: t.Symbol,
			To:     m.Name(t.To),
			Output: out,
		})
	}
	return domain.New(def)
}
