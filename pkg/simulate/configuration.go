package simulate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/construct"
	"github.com/aretw0/automata/pkg/domain"
)

// ErrInputExhausted is returned by Advance when there is nothing left to consume.
var ErrInputExhausted = errors.New("input exhausted")

// Configuration is a snapshot of a run. Configurations are never mutated once
// created; advancing yields a new one.
type Configuration struct {
	Step int `json:"step"`

	// Symbol is the input consumed to reach this configuration: empty for the
	// initial one, ε for a PDA move that consumed nothing.
	Symbol string `json:"symbol,omitempty"`

	// States holds the active states. More than one only for NFA and ε-NFA,
	// none once a run is stuck.
	States    []domain.StateID `json:"states"`
	Remaining []string         `json:"remaining"`
	Consumed  int              `json:"consumed"`

	// Stack lists PDA stack contents bottom first; the top is the last element.
	Stack  []string `json:"stack,omitempty"`
	Output []string `json:"output,omitempty"`

	Taken []domain.Transition `json:"-"`
}

// Top returns the topmost stack symbol.
func (c Configuration) Top() (string, bool) {
	if len(c.Stack) == 0 {
		return "", false
	}
	return c.Stack[len(c.Stack)-1], true
}

// Stuck reports whether no state is active anymore.
func (c Configuration) Stuck() bool {
	return len(c.States) == 0
}

func (c Configuration) clone() Configuration {
	c.States = append([]domain.StateID(nil), c.States...)
	c.Remaining = append([]string(nil), c.Remaining...)
	if c.Stack != nil {
		c.Stack = append([]string(nil), c.Stack...)
	}
	if c.Output != nil {
		c.Output = append([]string(nil), c.Output...)
	}
	if c.Taken != nil {
		c.Taken = append([]domain.Transition(nil), c.Taken...)
	}
	return c
}

// Initial returns the configuration a run of a over input starts from.
func Initial(a *domain.Automaton, input []string) Configuration {
	cfg := Configuration{
		States:    []domain.StateID{a.Start()},
		Remaining: append([]string{}, input...),
	}
	switch a.Kind() {
	case domain.KindENFA:
		cfg.States = construct.EpsilonClosure(a, cfg.States)
	case domain.KindPDA:
		cfg.Stack = []string{a.InitialStack()}
	}
	return cfg
}

// Advance consumes the next input symbol of cfg on a finite machine and returns the
// resulting configuration. cfg itself is left untouched.
//
// A missing transition yields a stuck configuration for acceptors, except for a DFA
// that requires totality, where it is a *domain.NoTransitionError like for transducers.
func Advance(a *domain.Automaton, cfg Configuration) (Configuration, error) {
	if len(cfg.Remaining) == 0 {
		return cfg.clone(), ErrInputExhausted
	}

	next := cfg.clone()
	sym := next.Remaining[0]
	next.Remaining = next.Remaining[1:]
	next.Step = cfg.Step + 1
	next.Consumed = cfg.Consumed + 1
	next.Symbol = sym
	next.Taken = nil

	stuck := func() error {
		name := ""
		if len(cfg.States) > 0 {
			name = a.Name(cfg.States[0])
		}
		return &domain.NoTransitionError{State: name, Symbol: sym, Step: next.Step}
	}

	switch a.Kind() {
	case domain.KindDFA, domain.KindMoore:
		if len(cfg.States) == 0 {
			next.States = nil
			return next, nil
		}
		q := cfg.States[0]
		to, ok := a.Next(q, sym)
		if !ok {
			if a.Kind() == domain.KindMoore || a.RequireTotal() {
				return cfg.clone(), stuck()
			}
			next.States = nil
			return next, nil
		}
		next.States = []domain.StateID{to}
		next.Taken = []domain.Transition{{From: q, Symbol: sym, To: to}}
		if a.Kind() == domain.KindMoore {
			next.Output = append(next.Output, a.Output(to))
		}
		return next, nil

	case domain.KindMealy:
		if len(cfg.States) == 0 {
			return cfg.clone(), stuck()
		}
		q := cfg.States[0]
		to, out, ok := a.Step(q, sym)
		if !ok {
			return cfg.clone(), stuck()
		}
		next.States = []domain.StateID{to}
		next.Taken = []domain.Transition{{From: q, Symbol: sym, To: to, Output: out}}
		next.Output = append(next.Output, out)
		return next, nil

	case domain.KindNFA, domain.KindENFA:
		seen := make(map[domain.StateID]bool)
		var moved []domain.StateID
		// ε never names an input symbol: reading it must not follow ε-edges.
		if domain.IsEpsilon(sym) || !a.HasSymbol(sym) {
			next.States = nil
			return next, nil
		}
		for _, q := range cfg.States {
			for _, to := range a.Targets(q, sym) {
				next.Taken = append(next.Taken, domain.Transition{From: q, Symbol: sym, To: to})
				if !seen[to] {
					seen[to] = true
					moved = append(moved, to)
				}
			}
		}
		// Without ε-transitions the closure only sorts the set.
		next.States = construct.EpsilonClosure(a, moved)
		return next, nil
	}
	return cfg.clone(), fmt.Errorf("advance %s: %w", a.Kind(), domain.ErrKindMismatch)
}

// Describe renders the snapshot on one line, naming states through a.
func (c Configuration) Describe(a *domain.Automaton) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "step %d", c.Step)
	if c.Symbol != "" {
		fmt.Fprintf(&sb, " [%s]", c.Symbol)
	}
	if c.Stuck() {
		sb.WriteString(" stuck")
	} else {
		fmt.Fprintf(&sb, " {%s}", strings.Join(a.Names(c.States), ","))
	}
	rest := strings.Join(c.Remaining, "")
	if rest == "" {
		rest = domain.Epsilon
	}
	fmt.Fprintf(&sb, " input=%s", rest)
	if a.Kind() == domain.KindPDA {
		stack := strings.Join(c.Stack, "")
		if stack == "" {
			stack = domain.Epsilon
		}
		fmt.Fprintf(&sb, " stack=%s", stack)
	}
	if len(c.Output) > 0 {
		fmt.Fprintf(&sb, " output=%s", strings.Join(c.Output, ""))
	}
	return sb.String()
}
