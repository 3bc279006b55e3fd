package construct

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/regex"
)

type fragment struct {
	start, accept int
}

type thompson struct {
	states int
	edges  []domain.TransitionDef
}

func (b *thompson) state() int {
	b.states++
	return b.states - 1
}

func (b *thompson) edge(from int, symbol string, to int) {
	b.edges = append(b.edges, domain.TransitionDef{From: stateName(from), Symbol: symbol, To: stateName(to)})
}

func (b *thompson) build(n *regex.Node) fragment {
	switch n.Kind {
	case regex.Literal, regex.Epsilon:
		symbol := n.Symbol
		if n.Kind == regex.Epsilon {
			symbol = domain.Epsilon
		}
		s, a := b.state(), b.state()
		b.edge(s, symbol, a)
		return fragment{s, a}

	case regex.Concat:
		l := b.build(n.Left)
		r := b.build(n.Right)
		b.edge(l.accept, domain.Epsilon, r.start)
		return fragment{l.start, r.accept}

	case regex.Union:
		s := b.state()
		l := b.build(n.Left)
		r := b.build(n.Right)
		a := b.state()
		b.edge(s, domain.Epsilon, l.start)
		b.edge(s, domain.Epsilon, r.start)
		b.edge(l.accept, domain.Epsilon, a)
		b.edge(r.accept, domain.Epsilon, a)
		return fragment{s, a}

	case regex.Star, regex.Plus:
		s := b.state()
		body := b.build(n.Left)
		a := b.state()
		b.edge(s, domain.Epsilon, body.start)
		if n.Kind == regex.Star {
			b.edge(s, domain.Epsilon, a)
		}
		b.edge(body.accept, domain.Epsilon, body.start)
		b.edge(body.accept, domain.Epsilon, a)
		return fragment{s, a}
	}
	panic("construct: unknown regex node kind " + n.Kind.String())
}

// Thompson builds an ε-NFA with exactly one start and one accepting state that
// recognizes the language of n. States are named q0, q1, ... in creation order.
func Thompson(n *regex.Node) (*domain.Automaton, error) {
	b := &thompson{}
	f := b.build(n)

	def := domain.Definition{
		Type:         domain.KindENFA,
		Alphabet:     regex.Symbols(n),
		StartState:   stateName(f.start),
		AcceptStates: []string{stateName(f.accept)},
		Transitions:  b.edges,
	}
	for i := 0; i < b.states; i++ {
		def.States = append(def.States, stateName(i))
	}
	return domain.New(def)
}

// FromRegex parses pattern and runs Thompson's construction on it.
func FromRegex(pattern string) (*domain.Automaton, error) {
	n, err := regex.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return Thompson(n)
}
