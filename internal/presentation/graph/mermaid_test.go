package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func sample() *domain.Automaton {
	return domain.MustNew(domain.Definition{
		Type:         domain.KindNFA,
		Name:         `say "hi"`,
		States:       []string{"q0", "{q1,q2}"},
		Alphabet:     []string{"a", "b"},
		StartState:   "q0",
		AcceptStates: []string{"{q1,q2}"},
		Transitions: []domain.TransitionDef{
			{From: "q0", Symbol: "a", To: "{q1,q2}"},
			{From: "q0", Symbol: "b", To: "{q1,q2}"},
			{From: "{q1,q2}", Symbol: "a", To: "q0"},
		},
	})
}

func TestMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *domain.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes and merged labels",
			contains: []string{
				"graph LR\n",
				`s0(("q0"))`,
				`s1((("{q1,q2}")))`,
				"start_[ ] --> s0",
				`s0 -- "a, b" --> s1`,
				`s1 -- "a" --> s0`,
				"#quot;hi#quot;",
			},
			excludes: []string{"classDef"},
		},
		{
			name: "Overlay",
			overlay: &domain.Overlay{
				Current: []domain.StateID{1},
				Visited: []domain.StateID{0},
				Taken:   []domain.Transition{{From: 0, Symbol: "a", To: 1}},
			},
			contains: []string{
				"class s0 visited;",
				"class s1 current;",
				"linkStyle 1 stroke",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.Mermaid(sample().Graph(tt.overlay))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestMermaid_MooreOutputs(t *testing.T) {
	moore := domain.MustNew(domain.Definition{
		Type:         domain.KindMoore,
		States:       []string{"q0", "q1"},
		Alphabet:     []string{"a"},
		StartState:   "q0",
		StateOutputs: map[string]string{"q0": "", "q1": "1"},
		Transitions: []domain.TransitionDef{
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q1", Symbol: "a", To: "q1"},
		},
	})
	out := graph.Mermaid(moore.Graph(nil))
	assert.Contains(t, out, `s0(("q0 / ε"))`)
	assert.Contains(t, out, `s1(("q1 / 1"))`)
	assert.Equal(t, 3, strings.Count(out, "-->"), "one entry arrow plus two edges")
}

func TestDOT(t *testing.T) {
	out := graph.DOT(sample().Graph(&domain.Overlay{Current: []domain.StateID{0}}))

	assert.True(t, strings.HasPrefix(out, "digraph"))
	assert.Contains(t, out, `rankdir="LR"`)
	assert.Contains(t, out, `label="{q1,q2}"`)
	assert.Contains(t, out, `shape="doublecircle"`)
	assert.Contains(t, out, `label="a, b"`)
	assert.Contains(t, out, `fillcolor="#ffeb3b"`)
	assert.Contains(t, out, `style="invis"`)
}

func TestDOT_PDALabels(t *testing.T) {
	pda := domain.MustNew(domain.Definition{
		Type:          domain.KindPDA,
		States:        []string{"p"},
		Alphabet:      []string{"a"},
		StartState:    "p",
		StackAlphabet: []string{"A", "Z"},
		Transitions: []domain.TransitionDef{
			{From: "p", Symbol: "a", To: "p", Pop: "Z", Push: []string{"Z", "A"}},
		},
	})
	out := graph.DOT(pda.Graph(nil))
	assert.Contains(t, out, "a, Z/")
}
