package simulate_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/simulate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anbn recognizes a^n b^n, by final state or by empty stack.
func anbn(mode domain.AcceptanceMode) *domain.Automaton {
	final := domain.TransitionDef{From: "q", Symbol: "ε", To: "f", Pop: "Z", Push: []string{"Z"}}
	if mode == domain.AcceptEmptyStack {
		final.Push = nil
	}
	return domain.MustNew(domain.Definition{
		Type:          domain.KindPDA,
		States:        []string{"p", "q", "f"},
		Alphabet:      []string{"a", "b"},
		StartState:    "p",
		AcceptStates:  []string{"f"},
		StackAlphabet: []string{"A", "Z"},
		Acceptance:    mode,
		Transitions: []domain.TransitionDef{
			{From: "p", Symbol: "a", To: "p", Push: []string{"A"}},
			{From: "p", Symbol: "ε", To: "q"},
			{From: "q", Symbol: "b", To: "q", Pop: "A"},
			final,
		},
	})
}

func TestRun_PDA(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"ab", true},
		{"aabb", true},
		{"aaabbb", true},
		{"aab", false},
		{"abb", false},
		{"ba", false},
	}
	for _, mode := range []domain.AcceptanceMode{domain.AcceptFinalState, domain.AcceptEmptyStack} {
		a := anbn(mode)
		for _, tt := range tests {
			res, err := run(t, a, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Accepted, "%s on %q", mode, tt.input)
		}
	}
}

func TestRun_PDATrace(t *testing.T) {
	res, err := run(t, anbn(domain.AcceptFinalState), "aabb")
	require.NoError(t, err)
	require.True(t, res.Accepted)

	first := res.Trace[0]
	assert.Equal(t, []string{"Z"}, first.Stack)
	assert.Equal(t, []string{"Z", "A"}, res.Trace[1].Stack)
	assert.Equal(t, []string{"Z", "A", "A"}, res.Trace[2].Stack)
	assert.Equal(t, domain.Epsilon, res.Trace[3].Symbol)

	final := res.Final()
	assert.Equal(t, []string{"Z"}, final.Stack)
	assert.Empty(t, final.Remaining)
	assert.Equal(t, 7, len(res.Trace))
	for i, cfg := range res.Trace {
		assert.Equal(t, i, cfg.Step)
	}
}

func TestRun_PDAPushOrderIsLIFO(t *testing.T) {
	def := domain.Definition{
		Type:          domain.KindPDA,
		States:        []string{"p", "q", "r", "s"},
		Alphabet:      []string{"a", "b", "c"},
		StartState:    "p",
		AcceptStates:  []string{"s"},
		StackAlphabet: []string{"X", "Y", "Z"},
		Transitions: []domain.TransitionDef{
			{From: "p", Symbol: "a", To: "q", Push: []string{"X", "Y"}},
			{From: "q", Symbol: "b", To: "r", Pop: "Y"},
			{From: "r", Symbol: "c", To: "s", Pop: "X"},
		},
	}

	res, err := run(t, domain.MustNew(def), "abc")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, []string{"Z", "X", "Y"}, res.Trace[1].Stack)
	assert.Equal(t, []string{"Z", "X"}, res.Trace[2].Stack)
	assert.Equal(t, []string{"Z"}, res.Trace[3].Stack)

	// Popping the deeper symbol first must fail.
	def.Transitions[1].Pop = "X"
	def.Transitions[2].Pop = "Y"
	res, err = run(t, domain.MustNew(def), "abc")
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, 1, res.Final().Consumed)
}

func TestRun_PDAStepLimit(t *testing.T) {
	// ε-loop that grows the stack forever.
	a := domain.MustNew(domain.Definition{
		Type:         domain.KindPDA,
		States:       []string{"p", "f"},
		Alphabet:     []string{"a"},
		StartState:   "p",
		AcceptStates: []string{"f"},
		Transitions: []domain.TransitionDef{
			{From: "p", Symbol: "ε", To: "p", Push: []string{"A"}},
		},
	})

	res, err := run(t, a, "a", simulate.WithStepLimit(50))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)

	var limitErr *domain.StepLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 50, limitErr.Limit)
	require.NotNil(t, res)
	assert.Equal(t, 50, res.Steps)
	assert.False(t, res.Accepted)
}

func TestRun_PDAAcceptanceOverride(t *testing.T) {
	a := anbn(domain.AcceptFinalState)

	// The final-state machine keeps Z on the stack, so it never empties.
	res, err := run(t, a, "ab", simulate.WithAcceptance(domain.AcceptEmptyStack))
	require.NoError(t, err)
	assert.False(t, res.Accepted)
}
