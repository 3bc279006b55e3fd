package construct

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Convert turns a into an equivalent automaton of the target kind.
//
// Supported paths: ENFA -> NFA, NFA/ENFA -> DFA, Mealy <-> Moore, and the widening
// re-tags DFA -> NFA -> ENFA. Converting to the same kind returns a unchanged.
func Convert(a *domain.Automaton, target domain.Kind) (*domain.Automaton, error) {
	from := a.Kind()
	if from == target {
		return a, nil
	}

	switch {
	case from == domain.KindENFA && target == domain.KindNFA:
		return RemoveEpsilon(a)
	case (from == domain.KindNFA || from == domain.KindENFA) && target == domain.KindDFA:
		return Determinize(a)
	case from == domain.KindMealy && target == domain.KindMoore:
		return MealyToMoore(a)
	case from == domain.KindMoore && target == domain.KindMealy:
		return MooreToMealy(a)
	case from == domain.KindDFA && (target == domain.KindNFA || target == domain.KindENFA),
		from == domain.KindNFA && target == domain.KindENFA:
		def := a.Definition()
		def.Type = target
		def.RequireTotal = false
		return domain.New(def)
	}
	return nil, fmt.Errorf("convert %s to %s: %w", from, target, domain.ErrKindMismatch)
}
