package dsl

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/simulate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accepts(t *testing.T, a *domain.Automaton, input string) bool {
	t.Helper()
	ok, err := simulate.New().Accepts(context.Background(), a, simulate.Tokenize(a, input))
	require.NoError(t, err)
	return ok
}

func TestBuilder_DFA(t *testing.T) {
	b := New(domain.KindDFA).Name("ends-in-one")

	b.State("q0").Start().
		On("0", "q0").
		On("1", "q1")

	b.State("q1").Accept().
		On("0", "q0").
		On("1", "q1")

	def := b.Definition()
	assert.Equal(t, []string{"q0", "q1"}, def.States)
	assert.Equal(t, []string{"0", "1"}, def.Alphabet)
	assert.Equal(t, "q0", def.StartState)
	assert.Equal(t, []string{"q1"}, def.AcceptStates)
	assert.Len(t, def.Transitions, 4)

	a, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "ends-in-one", a.Label())
	assert.True(t, accepts(t, a, "0101"))
	assert.False(t, accepts(t, a, "10"))
}

func TestBuilder_ImplicitStatesKeepOrder(t *testing.T) {
	b := New(domain.KindNFA)
	b.State("s").Start().On("a", "t").Epsilon("u")
	b.State("u").Accept()

	def := b.Definition()
	assert.Equal(t, []string{"s", "t", "u"}, def.States)
	assert.Equal(t, []string{"a"}, def.Alphabet, "ε is never part of the alphabet")
}

func TestBuilder_ExplicitAlphabet(t *testing.T) {
	b := New(domain.KindDFA).Alphabet("a", "b")
	b.State("q").Start().Accept().On("a", "q")

	a, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, a.Alphabet())
	assert.False(t, a.IsComplete())
}

func TestBuilder_StartMovesBetweenStates(t *testing.T) {
	b := New(domain.KindDFA)
	b.State("a").Start()
	b.State("b").Start()

	assert.Equal(t, "b", b.Definition().StartState)
}

func TestBuilder_Transducers(t *testing.T) {
	mealy := New(domain.KindMealy)
	mealy.State("idle").Start().
		Emit("0", "idle", "0").
		Emit("1", "seen", "0")
	mealy.State("seen").
		Emit("0", "idle", "1").
		Emit("1", "seen", "0")

	a, err := mealy.Build()
	require.NoError(t, err)
	res, err := simulate.New().Run(context.Background(), a, []string{"1", "0", "1", "0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "0", "1"}, res.Outputs)

	moore := New(domain.KindMoore)
	moore.State("even").Start().Output("0").On("a", "odd")
	moore.State("odd").Output("1").On("a", "even")

	def := moore.Definition()
	assert.Equal(t, map[string]string{"even": "0", "odd": "1"}, def.StateOutputs)
	_, err = moore.Build()
	require.NoError(t, err)
}

func TestBuilder_PDA(t *testing.T) {
	b := New(domain.KindPDA).Name("anbn").Stack("Z")

	b.State("q0").Start().
		Move("a", "Z", "q0", "Z", "A").
		Move("a", "A", "q0", "A", "A").
		Move("b", "A", "q1").
		Move(domain.Epsilon, "Z", "q2", "Z")

	b.State("q1").
		Move("b", "A", "q1").
		Move(domain.Epsilon, "Z", "q2", "Z")

	b.State("q2").Accept()

	a, err := b.Build()
	require.NoError(t, err)
	assert.True(t, accepts(t, a, ""))
	assert.True(t, accepts(t, a, "aabb"))
	assert.False(t, accepts(t, a, "aab"))
	assert.False(t, accepts(t, a, "abab"))
}

func TestBuilder_InvalidDefinition(t *testing.T) {
	b := New(domain.KindDFA)
	b.State("q0").On("a", "q1")

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedAutomaton)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to build DFA"))
}
