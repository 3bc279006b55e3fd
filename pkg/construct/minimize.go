package construct

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Minimize returns the minimal DFA equivalent to dfa. Unreachable states are dropped,
// then the partition {accepting, non-accepting} is refined by successor signatures
// until it is stable. A missing transition has its own signature value, so partial
// DFAs stay partial. Blocks are named q0, q1, ... in breadth-first order from the start
// block, which makes the result canonical: minimizing it again yields the same machine.
func Minimize(dfa *domain.Automaton) (*domain.Automaton, error) {
	if dfa.Kind() != domain.KindDFA {
		return nil, fmt.Errorf("minimize %s: %w", dfa.Kind(), domain.ErrKindMismatch)
	}

	reach := dfa.Reachable()
	alphabet := dfa.Alphabet()
	pos := make(map[domain.StateID]int, len(reach))
	for i, q := range reach {
		pos[q] = i
	}

	block := make([]int, len(reach))
	for i, q := range reach {
		if dfa.IsAccepting(q) {
			block[i] = 1
		}
	}
	count := countBlocks(block)

	for {
		sigs := make(map[string]int)
		next := make([]int, len(reach))
		for i, q := range reach {
			var sb strings.Builder
			sb.WriteString(strconv.Itoa(block[i]))
			for _, sym := range alphabet {
				sb.WriteByte(':')
				if to, ok := dfa.Next(q, sym); ok {
					sb.WriteString(strconv.Itoa(block[pos[to]]))
				} else {
					sb.WriteString("-1")
				}
			}
			sig := sb.String()
			id, ok := sigs[sig]
			if !ok {
				id = len(sigs)
				sigs[sig] = id
			}
			next[i] = id
		}
		block = next
		if len(sigs) == count {
			break
		}
		count = len(sigs)
	}

	// One representative per block is enough: members agree on every successor block.
	rep := make([]domain.StateID, count)
	for i := range rep {
		rep[i] = domain.NoState
	}
	for i, q := range reach {
		if rep[block[i]] == domain.NoState {
			rep[block[i]] = q
		}
	}

	order := make([]int, count)
	for i := range order {
		order[i] = -1
	}
	startBlock := block[pos[dfa.Start()]]
	order[startBlock] = 0
	queue := []int{startBlock}
	seen := 1
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		for _, sym := range alphabet {
			to, ok := dfa.Next(rep[b], sym)
			if !ok {
				continue
			}
			tb := block[pos[to]]
			if order[tb] < 0 {
				order[tb] = seen
				seen++
				queue = append(queue, tb)
			}
		}
	}

	def := domain.Definition{
		Type:         domain.KindDFA,
		Name:         dfa.Label(),
		States:       make([]string, count),
		Alphabet:     alphabet,
		StartState:   stateName(0),
		RequireTotal: dfa.RequireTotal(),
	}
	byOrder := make([]int, count)
	for b, o := range order {
		byOrder[o] = b
	}
	for o, b := range byOrder {
		def.States[o] = stateName(o)
		if dfa.IsAccepting(rep[b]) {
			def.AcceptStates = append(def.AcceptStates, stateName(o))
		}
		for _, sym := range alphabet {
			if to, ok := dfa.Next(rep[b], sym); ok {
				def.Transitions = append(def.Transitions, domain.TransitionDef{
					From:   stateName(o),
					Symbol: sym,
					To:     stateName(order[block[pos[to]]]),
				})
			}
		}
	}
	return domain.New(def)
}

func countBlocks(block []int) int {
	set := make(map[int]bool)
	for _, b := range block {
		set[b] = true
	}
	return len(set)
}
