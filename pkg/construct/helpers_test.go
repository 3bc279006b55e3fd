package construct_test

import (
	"github.com/aretw0/automata/pkg/construct"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/regex"
)

// reference decides membership straight from the AST, independently of any automaton.
func reference(n *regex.Node, w []string) bool {
	return ends(n, w, 0)[len(w)]
}

func ends(n *regex.Node, w []string, i int) map[int]bool {
	out := make(map[int]bool)
	switch n.Kind {
	case regex.Literal:
		if i < len(w) && w[i] == n.Symbol {
			out[i+1] = true
		}
	case regex.Epsilon:
		out[i] = true
	case regex.Concat:
		for mid := range ends(n.Left, w, i) {
			for e := range ends(n.Right, w, mid) {
				out[e] = true
			}
		}
	case regex.Union:
		for e := range ends(n.Left, w, i) {
			out[e] = true
		}
		for e := range ends(n.Right, w, i) {
			out[e] = true
		}
	case regex.Star, regex.Plus:
		var frontier []int
		if n.Kind == regex.Star {
			out[i] = true
			frontier = []int{i}
		} else {
			for e := range ends(n.Left, w, i) {
				out[e] = true
				frontier = append(frontier, e)
			}
		}
		for len(frontier) > 0 {
			p := frontier[0]
			frontier = frontier[1:]
			for e := range ends(n.Left, w, p) {
				if !out[e] {
					out[e] = true
					frontier = append(frontier, e)
				}
			}
		}
	}
	return out
}

// accepts runs any finite acceptor using only the public query API.
func accepts(a *domain.Automaton, w []string) bool {
	if a.Kind() == domain.KindDFA {
		q := a.Start()
		for _, sym := range w {
			next, ok := a.Next(q, sym)
			if !ok {
				return false
			}
			q = next
		}
		return a.IsAccepting(q)
	}

	current := construct.EpsilonClosure(a, []domain.StateID{a.Start()})
	for _, sym := range w {
		var moved []domain.StateID
		for _, q := range current {
			moved = append(moved, a.Targets(q, sym)...)
		}
		current = construct.EpsilonClosure(a, moved)
	}
	for _, q := range current {
		if a.IsAccepting(q) {
			return true
		}
	}
	return false
}

// words enumerates every word over alphabet up to maxLen symbols.
func words(alphabet []string, maxLen int) [][]string {
	out := [][]string{{}}
	layer := [][]string{{}}
	for l := 0; l < maxLen; l++ {
		var next [][]string
		for _, w := range layer {
			for _, s := range alphabet {
				word := append(append([]string(nil), w...), s)
				next = append(next, word)
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

// transduce returns the outputs of a Mealy or Moore machine, one per consumed symbol.
func transduce(a *domain.Automaton, w []string) ([]string, bool) {
	q := a.Start()
	var out []string
	for _, sym := range w {
		if a.Kind() == domain.KindMealy {
			next, o, ok := a.Step(q, sym)
			if !ok {
				return out, false
			}
			out = append(out, o)
			q = next
			continue
		}
		next, ok := a.Next(q, sym)
		if !ok {
			return out, false
		}
		out = append(out, a.Output(next))
		q = next
	}
	return out, true
}
