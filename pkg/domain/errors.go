package domain

import (
	"errors"
	"fmt"
)

// ErrSyntax is returned when a regular expression cannot be parsed.
var ErrSyntax = errors.New("syntax error")

// ErrMalformedAutomaton is returned when a definition violates a structural invariant.
var ErrMalformedAutomaton = errors.New("malformed automaton")

// ErrNoTransition is returned when a run requires a transition that is not defined.
var ErrNoTransition = errors.New("no transition defined")

// ErrStepLimitExceeded is returned when a PDA search exceeds its step bound.
var ErrStepLimitExceeded = errors.New("step limit exceeded")

// ErrKindMismatch is returned when an operation is applied to an unsupported kind.
var ErrKindMismatch = errors.New("unsupported automaton kind")

// ErrDefinitionNotFound is returned when an ID cannot be found in a definition store.
var ErrDefinitionNotFound = errors.New("definition not found")

// SyntaxError locates a regex parse failure.
type SyntaxError struct {
	Pos    int
	Char   string
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Char == "" {
		return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Reason)
	}
	return fmt.Sprintf("syntax error at position %d near %q: %s", e.Pos, e.Char, e.Reason)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// MalformedError names the state and symbol that broke a definition, when known.
// Err carries the underlying decoding or validation failure, if any.
type MalformedError struct {
	State  string
	Symbol string
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	msg := "malformed automaton: "
	switch {
	case e.State != "" && e.Symbol != "":
		msg += fmt.Sprintf("state %q, symbol %q: ", e.State, e.Symbol)
	case e.State != "":
		msg += fmt.Sprintf("state %q: ", e.State)
	case e.Symbol != "":
		msg += fmt.Sprintf("symbol %q: ", e.Symbol)
	}
	msg += e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformedAutomaton }

func (e *MalformedError) Unwrap() error { return e.Err }

// Malformed is a shorthand constructor used by validators and loaders.
func Malformed(state, symbol, format string, args ...any) *MalformedError {
	return &MalformedError{State: state, Symbol: symbol, Reason: fmt.Sprintf(format, args...)}
}

// NoTransitionError reports the configuration in which a run got stuck.
type NoTransitionError struct {
	State  string
	Symbol string
	Step   int
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition from state %q on symbol %q (step %d)", e.State, e.Symbol, e.Step)
}

func (e *NoTransitionError) Is(target error) bool { return target == ErrNoTransition }

// StepLimitError is returned when a search was cut off before deciding.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit of %d exceeded", e.Limit)
}

func (e *StepLimitError) Is(target error) bool { return target == ErrStepLimitExceeded }
