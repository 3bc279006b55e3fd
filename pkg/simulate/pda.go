package simulate

import (
	"context"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

type pdaNode struct {
	state  domain.StateID
	pos    int
	stack  []string
	parent int
	taken  *domain.Transition
}

func pdaKey(n pdaNode) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(n.state)))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(n.pos))
	for _, s := range n.stack {
		sb.WriteByte('|')
		sb.WriteString(s)
	}
	return sb.String()
}

func (e *Engine) runPDA(ctx context.Context, a *domain.Automaton, input []string) (*Result, error) {
	mode := a.Acceptance()
	if e.acceptance != "" {
		mode = e.acceptance
	}
	accepts := func(n pdaNode) bool {
		if n.pos != len(input) {
			return false
		}
		if mode == domain.AcceptEmptyStack {
			return len(n.stack) == 0
		}
		return a.IsAccepting(n.state)
	}

	root := pdaNode{state: a.Start(), stack: []string{a.InitialStack()}, parent: -1}
	nodes := []pdaNode{root}
	visited := map[string]bool{pdaKey(root): true}
	deepest := 0

	res := &Result{Kind: domain.KindPDA, Verdict: VerdictReject}
	for head := 0; head < len(nodes); head++ {
		if err := ctx.Err(); err != nil {
			res.Trace = e.path(a, input, nodes, deepest)
			return res, err
		}
		if res.Steps >= e.stepLimit {
			res.Branches = len(nodes)
			res.Trace = e.path(a, input, nodes, deepest)
			return res, &domain.StepLimitError{Limit: e.stepLimit}
		}
		res.Steps++

		n := nodes[head]
		if n.pos > nodes[deepest].pos {
			deepest = head
		}
		if accepts(n) {
			res.Accepted = true
			res.Verdict = VerdictAccept
			res.Branches = len(nodes)
			res.Trace = e.path(a, input, nodes, head)
			return res, nil
		}

		moves := a.Moves(n.state, domain.Epsilon)
		if n.pos < len(input) && !domain.IsEpsilon(input[n.pos]) {
			moves = append(moves, a.Moves(n.state, input[n.pos])...)
		}
		for _, t := range moves {
			stack := n.stack
			if t.Pop != "" {
				if len(stack) == 0 || stack[len(stack)-1] != t.Pop {
					continue
				}
				stack = stack[:len(stack)-1]
			}
			next := make([]string, len(stack), len(stack)+len(t.Push))
			copy(next, stack)
			next = append(next, t.Push...)

			pos := n.pos
			if !t.IsEpsilon() {
				pos++
			}
			taken := t
			child := pdaNode{state: t.To, pos: pos, stack: next, parent: head, taken: &taken}
			key := pdaKey(child)
			if visited[key] {
				continue
			}
			visited[key] = true
			nodes = append(nodes, child)
		}
	}

	res.Branches = len(nodes)
	res.Trace = e.path(a, input, nodes, deepest)
	return res, nil
}

// path rebuilds the snapshots from the root to nodes[i].
func (e *Engine) path(a *domain.Automaton, input []string, nodes []pdaNode, i int) []Configuration {
	var chain []int
	for ; i >= 0; i = nodes[i].parent {
		chain = append(chain, i)
	}

	out := make([]Configuration, 0, len(chain))
	for step := len(chain) - 1; step >= 0; step-- {
		n := nodes[chain[step]]
		cfg := Configuration{
			Step:      len(out),
			States:    []domain.StateID{n.state},
			Remaining: append([]string{}, input[n.pos:]...),
			Consumed:  n.pos,
			Stack:     append([]string{}, n.stack...),
		}
		if n.taken != nil {
			cfg.Symbol = n.taken.Symbol
			cfg.Taken = []domain.Transition{*n.taken}
		}
		out = append(out, cfg)
	}
	return out
}
