package regex

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "a"},
		{"ab", "(ab)"},
		{"abc", "((ab)c)"},
		{"a|b", "(a|b)"},
		{"a|b|c", "((a|b)|c)"},
		{"ab|c", "((ab)|c)"},
		{"a*", "a*"},
		{"a*+", "a*+"},
		{"a*b+", "(a*b+)"},
		{"(a|b)*abb", "((((a|b)*a)b)b)"},
		{"a (b | c)", "(a(b|c))"},
		{"", "ε"},
		{"()", "ε"},
		{"ε", "ε"},
		{`a\e`, "(aε)"},
		{`\*a`, `(\*a)`},
		{"λ", "ε"},
		{"aλ", "(aε)"},
		{`a\ b`, `((a\ )b)`},
		{"(a)", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Parse(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
		reason  string
	}{
		{"(a", 0, "unmatched '('"},
		{"a)", 1, "unmatched ')'"},
		{"*a", 0, "nothing to repeat"},
		{"a|*", 2, "nothing to repeat"},
		{"a|", 1, "empty alternative"},
		{"|a", 0, "empty alternative"},
		{"(a||b)", 2, "empty alternative"},
		{"ab (c", 3, "unmatched '('"},
		{`a\`, 1, "dangling escape"},
		{`\λ`, 0, "ε cannot be escaped into a literal"},
		{`a\ε`, 1, "ε cannot be escaped into a literal"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSyntax)

			var syntaxErr *domain.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.pos, syntaxErr.Pos)
			assert.Equal(t, tt.reason, syntaxErr.Reason)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, pattern := range []string{"(a|b)*abb", "a*b+", "(ab|ε)+c", `\(x\)`, `a\ b`, "a\\\tb"} {
		n := MustParse(pattern)
		again, err := Parse(n.String())
		require.NoError(t, err, pattern)
		assert.Equal(t, n, again, pattern)
	}
}

func TestSymbols(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Symbols(MustParse("(c|a)*b a")))
	assert.Empty(t, Symbols(MustParse("ε")))
}
