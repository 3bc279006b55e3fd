package construct

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/bits-and-blooms/bitset"
)

// EpsilonClosure returns the sorted set of states reachable from states using only
// ε-transitions, states included.
func EpsilonClosure(a *domain.Automaton, states []domain.StateID) []domain.StateID {
	set := bitset.New(uint(a.Len()))
	for _, q := range states {
		set.Set(uint(q))
	}
	return members(closure(a, set))
}

func closure(a *domain.Automaton, set *bitset.BitSet) *bitset.BitSet {
	out := set.Clone()
	work := members(set)
	for len(work) > 0 {
		q := work[len(work)-1]
		work = work[:len(work)-1]
		for _, to := range a.Targets(q, domain.Epsilon) {
			if !out.Test(uint(to)) {
				out.Set(uint(to))
				work = append(work, to)
			}
		}
	}
	return out
}

func move(a *domain.Automaton, set *bitset.BitSet, symbol string) *bitset.BitSet {
	out := bitset.New(uint(a.Len()))
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		for _, to := range a.Targets(domain.StateID(i), symbol) {
			out.Set(uint(to))
		}
	}
	return out
}

func members(set *bitset.BitSet) []domain.StateID {
	out := make([]domain.StateID, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, domain.StateID(i))
	}
	return out
}

// setKey is the canonical identity of a state set: its sorted indices.
func setKey(set *bitset.BitSet) string {
	var sb strings.Builder
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(i), 10))
	}
	return sb.String()
}

func setName(a *domain.Automaton, set *bitset.BitSet) string {
	return "{" + strings.Join(a.Names(members(set)), ",") + "}"
}

func anyAccepting(a *domain.Automaton, set *bitset.BitSet) bool {
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if a.IsAccepting(domain.StateID(i)) {
			return true
		}
	}
	return false
}

// RemoveEpsilon converts an ε-NFA into an NFA over the same states.
// A state accepts when its ε-closure contains an accepting state, and
// δ'(q, x) = closure(move(closure(q), x)).
func RemoveEpsilon(a *domain.Automaton) (*domain.Automaton, error) {
	switch a.Kind() {
	case domain.KindENFA, domain.KindNFA:
	default:
		return nil, fmt.Errorf("remove epsilon from %s: %w", a.Kind(), domain.ErrKindMismatch)
	}

	def := domain.Definition{
		Type:       domain.KindNFA,
		Name:       a.Label(),
		Alphabet:   a.Alphabet(),
		StartState: a.Name(a.Start()),
	}
	for _, s := range a.States() {
		def.States = append(def.States, s.Name)

		single := bitset.New(uint(a.Len()))
		single.Set(uint(s.ID))
		from := closure(a, single)
		if anyAccepting(a, from) {
			def.AcceptStates = append(def.AcceptStates, s.Name)
		}
		for _, sym := range def.Alphabet {
			next := closure(a, move(a, from, sym))
			for _, to := range members(next) {
				def.Transitions = append(def.Transitions, domain.TransitionDef{From: s.Name, Symbol: sym, To: a.Name(to)})
			}
		}
	}
	return domain.New(def)
}

// Determinize runs the subset construction on an NFA or ε-NFA. Subsets are explored
// breadth-first from the closure of the start state and named after their members,
// e.g. {q0,q2}. Empty successor sets are not materialized, so the result may be
// partial but never contains an unreachable state.
func Determinize(a *domain.Automaton) (*domain.Automaton, error) {
	switch a.Kind() {
	case domain.KindNFA, domain.KindENFA, domain.KindDFA:
	default:
		return nil, fmt.Errorf("determinize %s: %w", a.Kind(), domain.ErrKindMismatch)
	}

	start := bitset.New(uint(a.Len()))
	start.Set(uint(a.Start()))
	start = closure(a, start)

	sets := []*bitset.BitSet{start}
	index := map[string]int{setKey(start): 0}
	taken := make(map[string]bool)
	names := []string{uniqueName(taken, setName(a, start))}

	def := domain.Definition{
		Type:     domain.KindDFA,
		Name:     a.Label(),
		Alphabet: a.Alphabet(),
	}
	for i := 0; i < len(sets); i++ {
		for _, sym := range def.Alphabet {
			next := closure(a, move(a, sets[i], sym))
			if next.None() {
				continue
			}
			key := setKey(next)
			j, ok := index[key]
			if !ok {
				j = len(sets)
				index[key] = j
				sets = append(sets, next)
				names = append(names, uniqueName(taken, setName(a, next)))
			}
			def.Transitions = append(def.Transitions, domain.TransitionDef{From: names[i], Symbol: sym, To: names[j]})
		}
	}

	def.States = names
	def.StartState = names[0]
	for i, set := range sets {
		if anyAccepting(a, set) {
			def.AcceptStates = append(def.AcceptStates, names[i])
		}
	}
	return domain.New(def)
}

// Complete adds a non-accepting sink state that receives every missing transition
// of a DFA. A DFA that is already complete is returned unchanged.
func Complete(dfa *domain.Automaton, sink string) (*domain.Automaton, error) {
	if dfa.Kind() != domain.KindDFA {
		return nil, fmt.Errorf("complete %s: %w", dfa.Kind(), domain.ErrKindMismatch)
	}
	if dfa.IsComplete() {
		return dfa, nil
	}
	if sink == "" {
		sink = "∅"
	}

	def := dfa.Definition()
	taken := make(map[string]bool, len(def.States))
	for _, s := range def.States {
		taken[s] = true
	}
	sink = uniqueName(taken, sink)
	def.States = append(def.States, sink)

	for _, s := range dfa.States() {
		for _, sym := range def.Alphabet {
			if _, ok := dfa.Next(s.ID, sym); !ok {
				def.Transitions = append(def.Transitions, domain.TransitionDef{From: s.Name, Symbol: sym, To: sink})
			}
		}
	}
	for _, sym := range def.Alphabet {
		def.Transitions = append(def.Transitions, domain.TransitionDef{From: sink, Symbol: sym, To: sink})
	}
	return domain.New(def)
}
