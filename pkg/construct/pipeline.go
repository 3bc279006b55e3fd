package construct

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/regex"
)

// Pipeline holds every stage of a regex compilation.
type Pipeline struct {
	Pattern string
	AST     *regex.Node
	ENFA    *domain.Automaton
	NFA     *domain.Automaton
	DFA     *domain.Automaton
	Minimal *domain.Automaton
}

// Stages lists the automata of the pipeline in construction order.
func (p *Pipeline) Stages() []*domain.Automaton {
	return []*domain.Automaton{p.ENFA, p.NFA, p.DFA, p.Minimal}
}

// Observer runs one named construction stage. It must call build exactly once and
// may time, report or wrap the result.
type Observer func(stage string, from domain.Kind, build func() (*domain.Automaton, error)) (*domain.Automaton, error)

// Compile runs a pattern through Thompson construction, ε-removal, subset
// construction and minimization. Every stage is labelled with the pattern.
func Compile(pattern string) (*Pipeline, error) {
	return CompileWith(pattern, nil)
}

// CompileWith is Compile with every stage routed through observe.
// Stage names are "thompson", "epsilon", "subset" and "minimize".
func CompileWith(pattern string, observe Observer) (*Pipeline, error) {
	if observe == nil {
		observe = func(_ string, _ domain.Kind, build func() (*domain.Automaton, error)) (*domain.Automaton, error) {
			return build()
		}
	}
	ast, err := regex.Parse(pattern)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{Pattern: pattern, AST: ast}
	if p.ENFA, err = observe("thompson", "", func() (*domain.Automaton, error) {
		return Thompson(ast)
	}); err != nil {
		return nil, err
	}
	if p.NFA, err = observe("epsilon", p.ENFA.Kind(), func() (*domain.Automaton, error) {
		return RemoveEpsilon(p.ENFA)
	}); err != nil {
		return nil, err
	}
	if p.DFA, err = observe("subset", p.NFA.Kind(), func() (*domain.Automaton, error) {
		return Determinize(p.NFA)
	}); err != nil {
		return nil, err
	}
	if p.Minimal, err = observe("minimize", p.DFA.Kind(), func() (*domain.Automaton, error) {
		return Minimize(p.DFA)
	}); err != nil {
		return nil, err
	}
	p.label()
	return p, nil
}

func (p *Pipeline) label() {
	p.ENFA = p.ENFA.WithLabel(p.Pattern)
	p.NFA = p.NFA.WithLabel(p.Pattern)
	p.DFA = p.DFA.WithLabel(p.Pattern)
	p.Minimal = p.Minimal.WithLabel(p.Pattern)
}
