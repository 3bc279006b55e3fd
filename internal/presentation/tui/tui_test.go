package tui_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/simulate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parity() *domain.Automaton {
	return domain.MustNew(domain.Definition{
		Type:         domain.KindMoore,
		Name:         "parity",
		States:       []string{"even", "odd"},
		Alphabet:     []string{"a"},
		StartState:   "even",
		StateOutputs: map[string]string{"even": "0", "odd": "1"},
		Transitions: []domain.TransitionDef{
			{From: "even", Symbol: "a", To: "odd"},
			{From: "odd", Symbol: "a", To: "even"},
		},
	})
}

func TestTransitionTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tui.TransitionTable(&buf, parity()))

	out := buf.String()
	assert.Contains(t, out, "→ even")
	assert.Contains(t, out, "odd")
	assert.Contains(t, strings.ToUpper(out), "OUTPUT")
}

func TestTransitionTable_ENFA(t *testing.T) {
	a := domain.MustNew(domain.Definition{
		Type:         domain.KindENFA,
		States:       []string{"p", "q"},
		Alphabet:     []string{"a"},
		StartState:   "p",
		AcceptStates: []string{"q"},
		Transitions:  []domain.TransitionDef{{From: "p", Symbol: domain.Epsilon, To: "q"}},
	})
	var buf bytes.Buffer
	require.NoError(t, tui.TransitionTable(&buf, a))
	assert.Contains(t, buf.String(), "*")
	assert.Contains(t, buf.String(), "-")
}

func TestReport(t *testing.T) {
	a := parity()
	res, err := simulate.New().Run(context.Background(), a, []string{"a", "a"})
	require.NoError(t, err)

	md := tui.Report(a, res)
	assert.Contains(t, md, "# parity")
	assert.Contains(t, md, "**verdict**: output")
	assert.Contains(t, md, "**initial output**: `0`")
	assert.Contains(t, md, "**outputs**: `1 0`")
	assert.Contains(t, md, "1. `step 2 [a] {even} input=ε output=10`")

	var buf bytes.Buffer
	require.NoError(t, tui.WriteReport(&buf, a, res))
	assert.Equal(t, md, buf.String(), "a buffer is not a terminal")
	assert.False(t, tui.IsTerminal(&buf))
}

func TestBannerAndVerdict(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.NotEmpty(t, buf.String())

	assert.Contains(t, tui.Verdict(&simulate.Result{Verdict: simulate.VerdictAccept}), "ACCEPT")
	assert.Contains(t, tui.Verdict(&simulate.Result{Verdict: simulate.VerdictReject}), "REJECT")
}
