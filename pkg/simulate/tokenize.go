package simulate

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// Tokenize splits raw input into symbols of a. Whitespace-separated input is split on
// whitespace. Otherwise symbols are matched greedily, longest first, against the
// alphabet; runes matching no symbol become single-rune symbols so the run can report
// them. a may be nil, in which case every rune is a symbol.
func Tokenize(a *domain.Automaton, input string) []string {
	if strings.ContainsAny(input, " \t\r\n") {
		return strings.Fields(input)
	}

	var alphabet []string
	if a != nil {
		alphabet = a.Alphabet()
	}
	sort.SliceStable(alphabet, func(i, j int) bool { return len(alphabet[i]) > len(alphabet[j]) })

	out := []string{}
	for len(input) > 0 {
		matched := ""
		for _, sym := range alphabet {
			if strings.HasPrefix(input, sym) {
				matched = sym
				break
			}
		}
		if matched == "" {
			_, size := utf8.DecodeRuneInString(input)
			matched = input[:size]
		}
		out = append(out, matched)
		input = input[len(matched):]
	}
	return out
}
