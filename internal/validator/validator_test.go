package validator

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLint_Clean(t *testing.T) {
	b := dsl.New(domain.KindDFA)
	b.State("q0").Start().On("0", "q0").On("1", "q1")
	b.State("q1").Accept().On("0", "q0").On("1", "q1")
	a, err := b.Build()
	require.NoError(t, err)

	assert.Empty(t, Lint(a))
}

func TestLint_Findings(t *testing.T) {
	b := dsl.New(domain.KindDFA).Alphabet("a", "b", "c")
	b.State("start").Start().On("a", "done").On("b", "trap")
	b.State("done").Accept()
	b.State("trap").On("a", "trap")
	b.State("orphan").On("a", "done")
	a, err := b.Build()
	require.NoError(t, err)

	var got []string
	for _, f := range Lint(a) {
		got = append(got, f.String())
	}
	assert.Equal(t, []string{
		`warning: state "orphan" is unreachable from the start state`,
		`note: state "trap" cannot reach an accepting state`,
		`note: symbol "c" is never read`,
		"note: transition function is partial",
	}, got)
}

func TestLint_EmptyLanguage(t *testing.T) {
	b := dsl.New(domain.KindNFA)
	b.State("s").Start().On("a", "s")
	a, err := b.Build()
	require.NoError(t, err)

	findings := Lint(a)
	require.Len(t, findings, 1)
	assert.Equal(t, SeverityWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "language is empty")
}

func TestLint_TransducersSkipLiveness(t *testing.T) {
	b := dsl.New(domain.KindMoore)
	b.State("even").Start().Output("0").On("a", "odd")
	b.State("odd").Output("1").On("a", "even")
	a, err := b.Build()
	require.NoError(t, err)

	assert.Empty(t, Lint(a))
}
