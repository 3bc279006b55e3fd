package domain

import "strings"

// Transition is a resolved transition. Its fields are interpreted according to the
// automaton Kind: Output for Mealy, Pop and Push for PDA.
//
// Push is applied in order, so the first symbol ends up deepest on the stack.
// An empty Pop means the transition does not inspect the stack.
type Transition struct {
	From   StateID
	Symbol string
	To     StateID
	Output string
	Pop    string
	Push   []string
}

// IsEpsilon reports whether the transition consumes no input.
func (t Transition) IsEpsilon() bool {
	return t.Symbol == Epsilon
}

// Label renders the transition the way exporters print it on an edge.
func (t Transition) Label(kind Kind) string {
	switch kind {
	case KindMealy:
		return t.Symbol + "/" + t.Output
	case KindPDA:
		pop := t.Pop
		if pop == "" {
			pop = Epsilon
		}
		push := strings.Join(t.Push, "")
		if push == "" {
			push = Epsilon
		}
		return t.Symbol + ", " + pop + "/" + push
	}
	return t.Symbol
}

func (t Transition) clone() Transition {
	if t.Push != nil {
		t.Push = append([]string(nil), t.Push...)
	}
	return t
}

func (t Transition) sameAs(o Transition) bool {
	if t.From != o.From || t.Symbol != o.Symbol || t.To != o.To || t.Output != o.Output || t.Pop != o.Pop {
		return false
	}
	if len(t.Push) != len(o.Push) {
		return false
	}
	for i := range t.Push {
		if t.Push[i] != o.Push[i] {
			return false
		}
	}
	return true
}
