package domain

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type canonical struct {
	Kind         Kind
	States       []string
	Accepting    []string
	Outputs      []string
	Alphabet     []string
	Start        string
	Transitions  []string
	Stack        []string
	InitialStack string
	Acceptance   AcceptanceMode
	RequireTotal bool
}

func (a *Automaton) canonical() canonical {
	c := canonical{
		Kind:         a.kind,
		Alphabet:     a.alphabet,
		Start:        a.states[a.start].Name,
		Stack:        a.stackAlphabet,
		InitialStack: a.initialStack,
		Acceptance:   a.acceptance,
		RequireTotal: a.requireTotal,
	}
	for _, s := range a.states {
		c.States = append(c.States, s.Name)
		if s.Accepting {
			c.Accepting = append(c.Accepting, s.Name)
		}
		if a.kind == KindMoore {
			c.Outputs = append(c.Outputs, s.Name+"="+s.Output)
		}
	}
	for _, t := range a.transitions {
		c.Transitions = append(c.Transitions, fmt.Sprintf("%s|%s|%s|%s|%s|%s",
			a.states[t.From].Name, t.Symbol, a.states[t.To].Name, t.Output, t.Pop, strings.Join(t.Push, " ")))
	}
	sort.Strings(c.States)
	sort.Strings(c.Accepting)
	sort.Strings(c.Outputs)
	sort.Strings(c.Transitions)
	return c
}

// Equal reports whether a and b describe the same machine, state names included.
// Declaration order and the label are ignored.
func (a *Automaton) Equal(b *Automaton) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a.canonical(), b.canonical())
}

// Isomorphic reports whether the reachable parts of a and b are identical up to a
// renaming of states. Deterministic kinds are compared by walking both machines in
// lockstep from their start states; other kinds by a backtracking search for a
// state bijection that preserves every labelled edge.
func (a *Automaton) Isomorphic(b *Automaton) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || !reflect.DeepEqual(a.alphabet, b.alphabet) {
		return false
	}
	if a.kind == KindPDA && (a.initialStack != b.initialStack || a.acceptance != b.acceptance ||
		!reflect.DeepEqual(a.stackAlphabet, b.stackAlphabet)) {
		return false
	}
	if !a.kind.Deterministic() {
		return isomorphicSearch(a, b)
	}

	fwd := map[StateID]StateID{a.start: b.start}
	rev := map[StateID]StateID{b.start: a.start}
	queue := []StateID{a.start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		q := fwd[p]

		if a.states[p].Accepting != b.states[q].Accepting || a.states[p].Output != b.states[q].Output {
			return false
		}
		if len(a.bySymbol[p]) != len(b.bySymbol[q]) {
			return false
		}
		for sym, idx := range a.bySymbol[p] {
			other, ok := b.bySymbol[q][sym]
			if !ok || len(other) == 0 || len(idx) == 0 {
				return false
			}
			ta, tb := a.transitions[idx[0]], b.transitions[other[0]]
			if ta.Output != tb.Output {
				return false
			}
			if mapped, seen := fwd[ta.To]; seen {
				if mapped != tb.To {
					return false
				}
				continue
			}
			if _, taken := rev[tb.To]; taken {
				return false
			}
			fwd[ta.To] = tb.To
			rev[tb.To] = ta.To
			queue = append(queue, ta.To)
		}
	}
	return true
}

// edgeLabel identifies a transition without its endpoints.
func edgeLabel(t Transition) string {
	return strings.Join(append([]string{t.Symbol, t.Output, t.Pop}, t.Push...), "\x00")
}

// shape indexes the reachable part of an automaton for isomorphicSearch.
type shape struct {
	order []StateID
	edges map[[2]StateID]map[string]int
	sig   map[StateID]string
}

func shapeOf(a *Automaton) shape {
	sh := shape{
		edges: make(map[[2]StateID]map[string]int),
		sig:   make(map[StateID]string),
	}
	seen := map[StateID]bool{a.start: true}
	queue := []StateID{a.start}
	out := make(map[StateID][]string)
	in := make(map[StateID][]string)
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		sh.order = append(sh.order, q)
		for _, t := range a.TransitionsFrom(q) {
			label := edgeLabel(t)
			key := [2]StateID{t.From, t.To}
			if sh.edges[key] == nil {
				sh.edges[key] = make(map[string]int)
			}
			sh.edges[key][label]++
			out[t.From] = append(out[t.From], label)
			in[t.To] = append(in[t.To], label)
			if !seen[t.To] {
				seen[t.To] = true
				queue = append(queue, t.To)
			}
		}
	}
	for _, q := range sh.order {
		sort.Strings(out[q])
		sort.Strings(in[q])
		sh.sig[q] = fmt.Sprintf("%t|%s|%q|%q", a.states[q].Accepting, a.states[q].Output, out[q], in[q])
	}
	return sh
}

// isomorphicSearch maps the states of a onto those of b in BFS order, pruning candidates
// by their local signature and checking edges against every state mapped so far.
func isomorphicSearch(a, b *Automaton) bool {
	sa, sb := shapeOf(a), shapeOf(b)
	if len(sa.order) != len(sb.order) {
		return false
	}

	fwd := make(map[StateID]StateID, len(sa.order))
	used := make(map[StateID]bool, len(sb.order))
	consistent := func(p StateID) bool {
		for p2, q2 := range fwd {
			q := fwd[p]
			if !reflect.DeepEqual(sa.edges[[2]StateID{p, p2}], sb.edges[[2]StateID{q, q2}]) ||
				!reflect.DeepEqual(sa.edges[[2]StateID{p2, p}], sb.edges[[2]StateID{q2, q}]) {
				return false
			}
		}
		return true
	}

	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(sa.order) {
			return true
		}
		p := sa.order[i]
		candidates := sb.order
		if i == 0 {
			candidates = []StateID{b.start}
		}
		for _, q := range candidates {
			if used[q] || sa.sig[p] != sb.sig[q] {
				continue
			}
			fwd[p], used[q] = q, true
			if consistent(p) && assign(i+1) {
				return true
			}
			delete(fwd, p)
			used[q] = false
		}
		return false
	}
	return assign(0)
}
