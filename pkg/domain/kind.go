package domain

import (
	"fmt"
	"strings"
)

// Kind tags the variant of an Automaton.
type Kind string

const (
	KindDFA   Kind = "DFA"
	KindNFA   Kind = "NFA"
	KindENFA  Kind = "ENFA"
	KindPDA   Kind = "PDA"
	KindMealy Kind = "MEALY"
	KindMoore Kind = "MOORE"
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{KindDFA, KindNFA, KindENFA, KindPDA, KindMealy, KindMoore}

// ParseKind accepts the canonical names plus the common aliases used by definition files.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DFA":
		return KindDFA, nil
	case "NFA":
		return KindNFA, nil
	case "ENFA", "E-NFA", "EPSILON-NFA", "Ε-NFA", "EPSILON_NFA":
		return KindENFA, nil
	case "PDA":
		return KindPDA, nil
	case "MEALY":
		return KindMealy, nil
	case "MOORE":
		return KindMoore, nil
	}
	return "", fmt.Errorf("unknown automaton type %q", s)
}

// Deterministic reports whether at most one transition may leave a state per symbol.
func (k Kind) Deterministic() bool {
	return k == KindDFA || k == KindMealy || k == KindMoore
}

// AllowsEpsilon reports whether transitions of this kind may be labeled ε.
func (k Kind) AllowsEpsilon() bool {
	return k == KindENFA || k == KindPDA
}

// Transducer reports whether the kind produces output instead of a verdict.
func (k Kind) Transducer() bool {
	return k == KindMealy || k == KindMoore
}

// Epsilon is the canonical label of a transition that consumes no input.
const Epsilon = "ε"

// DefaultStackSymbol is the initial stack content of a PDA when none is declared.
const DefaultStackSymbol = "Z"

// IsEpsilon reports whether s is one of the accepted spellings of ε.
func IsEpsilon(s string) bool {
	switch s {
	case Epsilon, `\e`, "eps", "epsilon", "λ":
		return true
	}
	return false
}

// AcceptanceMode selects how a PDA decides acceptance.
type AcceptanceMode string

const (
	AcceptFinalState AcceptanceMode = "final_state"
	AcceptEmptyStack AcceptanceMode = "empty_stack"
)

// ParseAcceptance maps an empty string to the default final-state mode.
func ParseAcceptance(s string) (AcceptanceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "final", "final_state", "final-state":
		return AcceptFinalState, nil
	case "empty", "empty_stack", "empty-stack":
		return AcceptEmptyStack, nil
	}
	return "", fmt.Errorf("unknown acceptance mode %q", s)
}
