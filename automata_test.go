package automata_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	contract "github.com/aretw0/automata/pkg/ports/tests"
	"github.com/aretw0/automata/pkg/simulate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_CompileHooks(t *testing.T) {
	var stages []string
	eng := automata.New(automata.WithLifecycleHooks(domain.LifecycleHooks{
		OnConvert: func(_ context.Context, e *domain.ConversionEvent) {
			assert.Equal(t, domain.EventConvert, e.Type)
			assert.Positive(t, e.States)
			stages = append(stages, e.Stage+":"+string(e.To))
		},
	}))

	p, err := eng.Compile(context.Background(), "(a|b)*abb")
	require.NoError(t, err)
	assert.Equal(t, []string{"thompson:ENFA", "epsilon:NFA", "subset:DFA", "minimize:DFA"}, stages)

	for _, a := range p.Stages() {
		assert.Equal(t, "(a|b)*abb", a.Label())
	}
	assert.Equal(t, 4, p.Minimal.Len())
}

func TestEngine_CompileSyntaxError(t *testing.T) {
	_, err := automata.New().Compile(context.Background(), "a(b")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestEngine_SimulateHook(t *testing.T) {
	var events []*domain.SimulationEvent
	eng := automata.New(
		automata.WithStepLimit(50),
		automata.WithLifecycleHooks(domain.LifecycleHooks{
			OnSimulate: func(_ context.Context, e *domain.SimulationEvent) { events = append(events, e) },
		}),
	)
	a, err := eng.Build(contract.SampleDefinition())
	require.NoError(t, err)

	res, err := eng.SimulateString(context.Background(), a, "0101")
	require.NoError(t, err)
	assert.True(t, res.Accepted)

	require.Len(t, events, 1)
	assert.Equal(t, "ends-in-one", events[0].Automaton)
	assert.True(t, events[0].Accepted)
	assert.Equal(t, 4, events[0].Steps)
	assert.NoError(t, events[0].Err)
}

func TestEngine_SimulateReportsErrors(t *testing.T) {
	var got error
	eng := automata.New(automata.WithLifecycleHooks(domain.LifecycleHooks{
		OnSimulate: func(_ context.Context, e *domain.SimulationEvent) { got = e.Err },
	}))
	mealy, err := eng.Build(domain.Definition{
		Type:        domain.KindMealy,
		States:      []string{"s"},
		Alphabet:    []string{"a", "b"},
		StartState:  "s",
		Transitions: []domain.TransitionDef{{From: "s", Symbol: "a", To: "s", Output: "x"}},
	})
	require.NoError(t, err)

	res, err := eng.SimulateString(context.Background(), mealy, "ab")
	assert.ErrorIs(t, err, domain.ErrNoTransition)
	assert.ErrorIs(t, got, domain.ErrNoTransition)
	require.NotNil(t, res)
	assert.Equal(t, []string{"x"}, res.Outputs)
}

func TestEngine_Load(t *testing.T) {
	store, err := memory.NewFromDefinitions(contract.SampleDefinition())
	require.NoError(t, err)

	eng := automata.New(automata.WithSource(store))
	a, err := eng.Load(context.Background(), "ends-in-one")
	require.NoError(t, err)
	assert.Equal(t, domain.KindDFA, a.Kind())

	_, err = eng.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = automata.New().Load(context.Background(), "ends-in-one")
	assert.Error(t, err, "no source configured")
}

func TestEngine_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfa.txt")
	require.NoError(t, os.WriteFile(path, []byte("type: NFA\nstates: q0, q1\nstart: q0\naccept: q1\ntransitions:\nq0, a -> q0, q1\nq0, b -> q0\n"), 0o644))

	eng := automata.New()
	nfa, err := eng.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, nfa.Label())

	dfa, err := eng.Convert(context.Background(), nfa, domain.KindDFA)
	require.NoError(t, err)
	assert.Equal(t, domain.KindDFA, dfa.Kind())
	assert.Equal(t, path, dfa.Label())

	minimal, err := eng.Minimize(context.Background(), nfa)
	require.NoError(t, err)
	for _, input := range []string{"a", "ba", "bba", "", "ab"} {
		want, err := eng.SimulateString(context.Background(), nfa, input)
		require.NoError(t, err)
		got, err := eng.SimulateString(context.Background(), minimal, input)
		require.NoError(t, err)
		assert.Equal(t, want.Accepted, got.Accepted, input)
	}
}

func TestEngine_ConvertUnsupported(t *testing.T) {
	eng := automata.New()
	a, err := eng.Build(contract.SampleDefinition())
	require.NoError(t, err)

	_, err = eng.Convert(context.Background(), a, domain.KindMealy)
	assert.ErrorIs(t, err, domain.ErrKindMismatch)
}

func TestEngine_PDAOptions(t *testing.T) {
	// Pushes forever on ε: only the step limit stops the search.
	loop := domain.Definition{
		Type:          domain.KindPDA,
		States:        []string{"p"},
		Alphabet:      []string{"a"},
		StartState:    "p",
		StackAlphabet: []string{"A", "Z"},
		Transitions:   []domain.TransitionDef{{From: "p", Symbol: domain.Epsilon, To: "p", Push: []string{"A"}}},
	}
	eng := automata.New(automata.WithStepLimit(25))
	a, err := eng.Build(loop)
	require.NoError(t, err)

	_, err = eng.SimulateString(context.Background(), a, "a")
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)

	// The initial stack is never emptied, so empty-stack acceptance fails as well.
	eng = automata.New(automata.WithStepLimit(25), automata.WithAcceptance(domain.AcceptEmptyStack))
	_, err = eng.SimulateString(context.Background(), a, "a")
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
}

func TestRunner_Interactive(t *testing.T) {
	eng := automata.New()
	a, err := eng.Build(contract.SampleDefinition())
	require.NoError(t, err)
	res, err := eng.SimulateString(context.Background(), a, "11")
	require.NoError(t, err)

	var out bytes.Buffer
	runner := &automata.Runner{
		Input:    strings.NewReader("n\np\nbogus\nn\nn\nn\n"),
		Output:   &out,
		Renderer: func(s string) (string, error) { return "** " + s + " **", nil },
	}
	require.NoError(t, runner.Run(a, res))

	text := out.String()
	assert.Contains(t, text, "step 0 {q0} input=11")
	assert.Contains(t, text, "step 1 [1] {q1} input=1")
	assert.Contains(t, text, `unknown command "bogus"`)
	assert.Contains(t, text, "(no more steps)")
	assert.Contains(t, text, "** accepted (2 steps) **")
}

func TestRunner_RequiresIO(t *testing.T) {
	res := &simulate.Result{}
	assert.Error(t, (&automata.Runner{}).Run(nil, res))
	assert.Error(t, (&automata.Runner{Output: &bytes.Buffer{}}).Run(nil, res))
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(automata.Version))
}
