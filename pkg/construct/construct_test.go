package construct_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/automata/pkg/construct"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/regex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var patterns = []string{
	"a*b+",
	"(a|b)*abb",
	"(ab|ba)*",
	"a(b|ε)c*",
	"(a|b)+",
	"ε",
	"((a|b)(a|b))*",
	"(a*b*)*",
	"a+b+|b+a+",
	"(a|ε)(b|ε)",
	"(a|b)*a(a|b)(a|b)",
	"a**",
	"(ε|a)+b",
}

func TestPipeline_AgreesWithReference(t *testing.T) {
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			ast := regex.MustParse(pattern)

			enfa, err := construct.Thompson(ast)
			require.NoError(t, err)
			nfa, err := construct.RemoveEpsilon(enfa)
			require.NoError(t, err)
			dfa, err := construct.Determinize(enfa)
			require.NoError(t, err)
			dfaFromNFA, err := construct.Determinize(nfa)
			require.NoError(t, err)
			minimal, err := construct.Minimize(dfa)
			require.NoError(t, err)

			alphabet := append(regex.Symbols(ast), "z")
			for _, w := range words(alphabet, 5) {
				want := reference(ast, w)
				word := strings.Join(w, "")
				assert.Equal(t, want, accepts(enfa, w), "ε-NFA on %q", word)
				assert.Equal(t, want, accepts(nfa, w), "NFA on %q", word)
				assert.Equal(t, want, accepts(dfa, w), "DFA on %q", word)
				assert.Equal(t, want, accepts(dfaFromNFA, w), "DFA(NFA) on %q", word)
				assert.Equal(t, want, accepts(minimal, w), "minimal DFA on %q", word)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	var stages []string
	p, err := construct.CompileWith("(a|b)*abb", func(stage string, from domain.Kind, build func() (*domain.Automaton, error)) (*domain.Automaton, error) {
		a, err := build()
		if err != nil {
			return nil, err
		}
		stages = append(stages, fmt.Sprintf("%s:%s->%s", stage, from, a.Kind()))
		return a, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"thompson:->ENFA", "epsilon:ENFA->NFA", "subset:NFA->DFA", "minimize:DFA->DFA"}, stages)
	assert.Equal(t, 4, p.Minimal.Len())
	for _, a := range p.Stages() {
		assert.Equal(t, "(a|b)*abb", a.Label())
	}

	plain, err := construct.Compile("(a|b)*abb")
	require.NoError(t, err)
	assert.True(t, plain.Minimal.Isomorphic(p.Minimal))

	_, err = construct.Compile("a|")
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestThompson_Shape(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"a", 2},
		{"ε", 2},
		{"ab", 4},
		{"a|b", 6},
		{"a*", 4},
		{"a+", 4},
		{"(a|b)*", 8},
		{"λ", 2},
		{"aλ", 4},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			a, err := construct.FromRegex(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, domain.KindENFA, a.Kind())
			assert.Equal(t, tt.states, a.Len())
			assert.Len(t, a.Accepting(), 1)
			assert.Equal(t, "q0", a.Name(0))
		})
	}

	for _, pattern := range []string{"(a", `\λ`, `a\ε`} {
		_, err := construct.FromRegex(pattern)
		assert.ErrorIs(t, err, domain.ErrSyntax, pattern)
		assert.NotErrorIs(t, err, domain.ErrMalformedAutomaton, pattern)
	}
}

func TestDeterminize_NoUnreachableStates(t *testing.T) {
	for _, pattern := range patterns {
		enfa, err := construct.FromRegex(pattern)
		require.NoError(t, err)
		dfa, err := construct.Determinize(enfa)
		require.NoError(t, err)

		assert.Equal(t, dfa.Len(), len(dfa.Reachable()), pattern)
		for _, s := range dfa.States() {
			assert.True(t, strings.HasPrefix(s.Name, "{"), s.Name)
		}
	}
}

func TestDeterminize_NamesSubsets(t *testing.T) {
	nfa := domain.MustNew(domain.Definition{
		Type:         domain.KindNFA,
		States:       []string{"q0", "q1", "q2"},
		Alphabet:     []string{"a", "b"},
		StartState:   "q0",
		AcceptStates: []string{"q2"},
		Transitions: []domain.TransitionDef{
			{From: "q0", Symbol: "a", To: "q0"},
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q0", Symbol: "b", To: "q0"},
			{From: "q1", Symbol: "b", To: "q2"},
		},
	})

	dfa, err := construct.Determinize(nfa)
	require.NoError(t, err)

	var names []string
	for _, s := range dfa.States() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"{q0}", "{q0,q1}", "{q0,q2}"}, names)

	accepting, ok := dfa.Lookup("{q0,q2}")
	require.True(t, ok)
	assert.True(t, dfa.IsAccepting(accepting))
	assert.True(t, dfa.IsComplete())
}

func TestMinimize(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"a*b+", 2},
		{"(a|b)*abb", 4},
		{"(a|b)+", 2},
		{"((a|b)(a|b))*", 2},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			enfa, err := construct.FromRegex(tt.pattern)
			require.NoError(t, err)
			dfa, err := construct.Determinize(enfa)
			require.NoError(t, err)

			minimal, err := construct.Minimize(dfa)
			require.NoError(t, err)
			assert.Equal(t, tt.states, minimal.Len())
			assert.Equal(t, "q0", minimal.Name(minimal.Start()))
		})
	}
}

func TestMinimize_Idempotent(t *testing.T) {
	for _, pattern := range patterns {
		enfa, err := construct.FromRegex(pattern)
		require.NoError(t, err)
		dfa, err := construct.Determinize(enfa)
		require.NoError(t, err)

		once, err := construct.Minimize(dfa)
		require.NoError(t, err)
		twice, err := construct.Minimize(once)
		require.NoError(t, err)

		assert.True(t, once.Isomorphic(twice), pattern)
		assert.True(t, once.Equal(twice), pattern)
		assert.LessOrEqual(t, once.Len(), dfa.Len(), pattern)
	}
}

func TestMinimize_DropsUnreachableAndMergesEquivalent(t *testing.T) {
	dfa := domain.MustNew(domain.Definition{
		Type:         domain.KindDFA,
		States:       []string{"A", "B", "C", "D"},
		Alphabet:     []string{"0", "1"},
		StartState:   "A",
		AcceptStates: []string{"B", "C"},
		Transitions: []domain.TransitionDef{
			{From: "A", Symbol: "0", To: "B"},
			{From: "A", Symbol: "1", To: "C"},
			{From: "B", Symbol: "0", To: "B"},
			{From: "B", Symbol: "1", To: "B"},
			{From: "C", Symbol: "0", To: "C"},
			{From: "C", Symbol: "1", To: "C"},
			{From: "D", Symbol: "0", To: "A"},
		},
	})

	minimal, err := construct.Minimize(dfa)
	require.NoError(t, err)
	assert.Equal(t, 2, minimal.Len())

	for _, w := range words([]string{"0", "1"}, 4) {
		assert.Equal(t, accepts(dfa, w), accepts(minimal, w), "%v", w)
	}

	_, err = construct.Minimize(domain.MustNew(domain.Definition{
		Type: domain.KindNFA, States: []string{"q"}, StartState: "q",
	}))
	assert.ErrorIs(t, err, domain.ErrKindMismatch)
}

func TestComplete(t *testing.T) {
	enfa, err := construct.FromRegex("ab")
	require.NoError(t, err)
	dfa, err := construct.Determinize(enfa)
	require.NoError(t, err)
	require.False(t, dfa.IsComplete())

	total, err := construct.Complete(dfa, "")
	require.NoError(t, err)
	assert.True(t, total.IsComplete())
	assert.Equal(t, dfa.Len()+1, total.Len())

	sink, ok := total.Lookup("∅")
	require.True(t, ok)
	assert.False(t, total.IsAccepting(sink))

	for _, w := range words([]string{"a", "b"}, 4) {
		assert.Equal(t, accepts(dfa, w), accepts(total, w), "%v", w)
	}

	again, err := construct.Complete(total, "")
	require.NoError(t, err)
	assert.Same(t, total, again)
}

func TestConvert(t *testing.T) {
	enfa, err := construct.FromRegex("a|b")
	require.NoError(t, err)

	nfa, err := construct.Convert(enfa, domain.KindNFA)
	require.NoError(t, err)
	assert.Equal(t, domain.KindNFA, nfa.Kind())

	dfa, err := construct.Convert(nfa, domain.KindDFA)
	require.NoError(t, err)
	assert.Equal(t, domain.KindDFA, dfa.Kind())

	widened, err := construct.Convert(dfa, domain.KindENFA)
	require.NoError(t, err)
	assert.Equal(t, domain.KindENFA, widened.Kind())

	same, err := construct.Convert(dfa, domain.KindDFA)
	require.NoError(t, err)
	assert.Same(t, dfa, same)

	_, err = construct.Convert(dfa, domain.KindMealy)
	assert.ErrorIs(t, err, domain.ErrKindMismatch)
}
