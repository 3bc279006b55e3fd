package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
		message  string
	}{
		{&SyntaxError{Pos: 3, Char: ")", Reason: "unmatched ')'"}, ErrSyntax, `syntax error at position 3 near ")": unmatched ')'`},
		{Malformed("q0", "a", "nondeterministic"), ErrMalformedAutomaton, `malformed automaton: state "q0", symbol "a": nondeterministic`},
		{&NoTransitionError{State: "s1", Symbol: "1", Step: 2}, ErrNoTransition, `no transition from state "s1" on symbol "1" (step 2)`},
		{&StepLimitError{Limit: 10}, ErrStepLimitExceeded, "step limit of 10 exceeded"},
	}
	for _, tt := range tests {
		wrapped := fmt.Errorf("outer: %w", tt.err)
		assert.True(t, errors.Is(wrapped, tt.sentinel))
		assert.Equal(t, tt.message, tt.err.Error())
	}
	assert.False(t, errors.Is(&StepLimitError{}, ErrNoTransition))
}
