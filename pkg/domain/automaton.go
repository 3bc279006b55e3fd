package domain

import (
	"sort"
	"strings"
)

// Automaton is a validated, immutable machine of one of the supported kinds.
// Every conversion returns a new Automaton; nothing mutates an existing one,
// so instances may be shared freely between concurrent simulations.
type Automaton struct {
	kind  Kind
	label string

	states []State
	index  map[string]StateID
	start  StateID

	alphabet []string
	symbols  map[string]bool

	transitions []Transition
	bySymbol    []map[string][]int

	stackAlphabet  []string
	initialStack   string
	acceptance     AcceptanceMode
	outputAlphabet []string
	requireTotal   bool
}

// New validates def and builds the corresponding Automaton.
// Validation failures are reported as *MalformedError.
func New(def Definition) (*Automaton, error) {
	kind, err := ParseKind(string(def.Type))
	if err != nil {
		return nil, Malformed("", "", "%v", err)
	}

	a := &Automaton{
		kind:         kind,
		label:        def.Name,
		index:        make(map[string]StateID, len(def.States)),
		symbols:      make(map[string]bool, len(def.Alphabet)),
		requireTotal: def.RequireTotal && kind == KindDFA,
	}

	if len(def.States) == 0 {
		return nil, Malformed("", "", "no states declared")
	}
	for i, name := range def.States {
		if strings.TrimSpace(name) == "" {
			return nil, Malformed("", "", "state #%d has an empty name", i)
		}
		if _, dup := a.index[name]; dup {
			return nil, Malformed(name, "", "duplicate state")
		}
		id := StateID(len(a.states))
		a.index[name] = id
		a.states = append(a.states, State{ID: id, Name: name})
	}
	a.bySymbol = make([]map[string][]int, len(a.states))

	if def.StartState == "" {
		return nil, Malformed("", "", "no start state declared")
	}
	start, ok := a.index[def.StartState]
	if !ok {
		return nil, Malformed(def.StartState, "", "start state is not declared")
	}
	a.start = start

	for _, name := range def.AcceptStates {
		id, ok := a.index[name]
		if !ok {
			return nil, Malformed(name, "", "accepting state is not declared")
		}
		a.states[id].Accepting = true
	}

	for _, s := range def.Alphabet {
		if s == "" {
			return nil, Malformed("", "", "empty alphabet symbol")
		}
		if IsEpsilon(s) {
			return nil, Malformed("", s, "ε cannot be an alphabet symbol")
		}
		a.symbols[s] = true
	}
	a.alphabet = sortedKeys(a.symbols)

	outputs := make(map[string]bool)
	declaredOutputs := len(def.OutputAlphabet) > 0
	for _, o := range def.OutputAlphabet {
		outputs[o] = true
	}
	useOutput := func(state, symbol, o string) error {
		if o == "" {
			return nil
		}
		if declaredOutputs && !outputs[o] {
			return Malformed(state, symbol, "output %q is not in the output alphabet", o)
		}
		outputs[o] = true
		return nil
	}

	if kind == KindMoore {
		for name := range def.StateOutputs {
			if _, ok := a.index[name]; !ok {
				return nil, Malformed(name, "", "output assigned to an undeclared state")
			}
		}
		for i := range a.states {
			name := a.states[i].Name
			o, ok := def.StateOutputs[name]
			if !ok {
				return nil, Malformed(name, "", "Moore state has no output")
			}
			if err := useOutput(name, "", o); err != nil {
				return nil, err
			}
			a.states[i].Output = o
		}
	}

	stack := make(map[string]bool)
	declaredStack := len(def.StackAlphabet) > 0
	useStack := func(state, symbol, s string) error {
		if declaredStack && !stack[s] {
			return Malformed(state, symbol, "stack symbol %q is not in the stack alphabet", s)
		}
		stack[s] = true
		return nil
	}
	if kind == KindPDA {
		mode, err := ParseAcceptance(string(def.Acceptance))
		if err != nil {
			return nil, Malformed("", "", "%v", err)
		}
		a.acceptance = mode
		a.initialStack = def.InitialStackSymbol
		if a.initialStack == "" {
			a.initialStack = DefaultStackSymbol
		}
		for _, s := range def.StackAlphabet {
			if s == "" || IsEpsilon(s) {
				return nil, Malformed("", s, "invalid stack symbol")
			}
			stack[s] = true
		}
		if err := useStack("", "", a.initialStack); err != nil {
			return nil, err
		}
	}

	for _, td := range def.Transitions {
		from, ok := a.index[td.From]
		if !ok {
			return nil, Malformed(td.From, td.Symbol, "transition source is not declared")
		}
		to, ok := a.index[td.To]
		if !ok {
			return nil, Malformed(td.To, td.Symbol, "transition target is not declared")
		}

		sym := td.Symbol
		switch {
		case IsEpsilon(sym):
			if !kind.AllowsEpsilon() {
				return nil, Malformed(td.From, Epsilon, "ε-transitions are not allowed in a %s", kind)
			}
			sym = Epsilon
		case sym == "":
			return nil, Malformed(td.From, "", "transition has no symbol")
		case !a.symbols[sym]:
			return nil, Malformed(td.From, sym, "symbol is not in the alphabet")
		}

		t := Transition{From: from, Symbol: sym, To: to}
		switch kind {
		case KindMealy:
			if td.Output == "" {
				return nil, Malformed(td.From, sym, "Mealy transition has no output")
			}
			if err := useOutput(td.From, sym, td.Output); err != nil {
				return nil, err
			}
			t.Output = td.Output
		case KindPDA:
			if td.Pop != "" && !IsEpsilon(td.Pop) {
				if err := useStack(td.From, sym, td.Pop); err != nil {
					return nil, err
				}
				t.Pop = td.Pop
			}
			for _, p := range td.Push {
				if p == "" || IsEpsilon(p) {
					continue
				}
				if err := useStack(td.From, sym, p); err != nil {
					return nil, err
				}
				t.Push = append(t.Push, p)
			}
		default:
			if td.Output != "" || td.Pop != "" || len(td.Push) > 0 {
				return nil, Malformed(td.From, sym, "outputs and stack operations are not valid in a %s", kind)
			}
		}

		if err := a.add(t); err != nil {
			return nil, err
		}
	}

	if kind.Transducer() {
		delete(outputs, "")
		a.outputAlphabet = sortedKeys(outputs)
	}
	if kind == KindPDA {
		a.stackAlphabet = sortedKeys(stack)
	}

	return a, nil
}

// MustNew is like New but panics on error. Intended for tests and static tables.
func MustNew(def Definition) *Automaton {
	a, err := New(def)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Automaton) add(t Transition) error {
	m := a.bySymbol[t.From]
	if m == nil {
		m = make(map[string][]int)
		a.bySymbol[t.From] = m
	}
	for _, i := range m[t.Symbol] {
		if a.transitions[i].sameAs(t) {
			return nil
		}
	}
	if a.kind.Deterministic() && len(m[t.Symbol]) > 0 {
		prev := a.transitions[m[t.Symbol][0]]
		return Malformed(a.states[t.From].Name, t.Symbol,
			"nondeterministic transition: already goes to %q", a.states[prev.To].Name)
	}
	m[t.Symbol] = append(m[t.Symbol], len(a.transitions))
	a.transitions = append(a.transitions, t)
	return nil
}

// Kind returns the variant tag.
func (a *Automaton) Kind() Kind { return a.kind }

// Label returns the optional human-readable name of the machine.
func (a *Automaton) Label() string { return a.label }

// WithLabel returns a copy of a carrying a different label.
func (a *Automaton) WithLabel(label string) *Automaton {
	cp := *a
	cp.label = label
	return &cp
}

// Len returns the number of states.
func (a *Automaton) Len() int { return len(a.states) }

// States returns a copy of the state table, ordered by StateID.
func (a *Automaton) States() []State {
	return append([]State(nil), a.states...)
}

// State returns the state with the given ID.
func (a *Automaton) State(id StateID) State {
	return a.states[id]
}

// Name returns the display name of id, or "" when id is out of range.
func (a *Automaton) Name(id StateID) string {
	if id < 0 || int(id) >= len(a.states) {
		return ""
	}
	return a.states[id].Name
}

// Names maps a list of IDs to display names.
func (a *Automaton) Names(ids []StateID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = a.Name(id)
	}
	return out
}

// Lookup resolves a display name.
func (a *Automaton) Lookup(name string) (StateID, bool) {
	id, ok := a.index[name]
	if !ok {
		return NoState, false
	}
	return id, true
}

// Alphabet returns the sorted input alphabet. ε is never part of it.
func (a *Automaton) Alphabet() []string {
	return append([]string(nil), a.alphabet...)
}

// HasSymbol reports whether s belongs to the input alphabet.
func (a *Automaton) HasSymbol(s string) bool { return a.symbols[s] }

// Start returns the start state.
func (a *Automaton) Start() StateID { return a.start }

// IsAccepting reports whether id is an accepting state.
func (a *Automaton) IsAccepting(id StateID) bool { return a.states[id].Accepting }

// Accepting returns the accepting states in ID order.
func (a *Automaton) Accepting() []StateID {
	var out []StateID
	for _, s := range a.states {
		if s.Accepting {
			out = append(out, s.ID)
		}
	}
	return out
}

// Output returns the Moore output attached to id.
func (a *Automaton) Output(id StateID) string { return a.states[id].Output }

// Transitions returns a copy of every transition in declaration order.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, len(a.transitions))
	for i, t := range a.transitions {
		out[i] = t.clone()
	}
	return out
}

// TransitionsFrom returns the transitions leaving id in declaration order.
func (a *Automaton) TransitionsFrom(id StateID) []Transition {
	var out []Transition
	for _, t := range a.transitions {
		if t.From == id {
			out = append(out, t.clone())
		}
	}
	return out
}

// Next returns the unique successor of (id, symbol) for deterministic kinds.
func (a *Automaton) Next(id StateID, symbol string) (StateID, bool) {
	idx := a.bySymbol[id][symbol]
	if len(idx) != 1 {
		return NoState, false
	}
	return a.transitions[idx[0]].To, true
}

// Step returns the successor and the emitted output of a Mealy transition.
func (a *Automaton) Step(id StateID, symbol string) (StateID, string, bool) {
	idx := a.bySymbol[id][symbol]
	if len(idx) != 1 {
		return NoState, "", false
	}
	t := a.transitions[idx[0]]
	return t.To, t.Output, true
}

// Targets returns the sorted set of states reachable from id on symbol in one step.
// Pass Epsilon to follow ε-transitions.
func (a *Automaton) Targets(id StateID, symbol string) []StateID {
	idx := a.bySymbol[id][symbol]
	if len(idx) == 0 {
		return nil
	}
	seen := make(map[StateID]bool, len(idx))
	out := make([]StateID, 0, len(idx))
	for _, i := range idx {
		to := a.transitions[i].To
		if !seen[to] {
			seen[to] = true
			out = append(out, to)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Moves returns the PDA transitions leaving id on symbol (which may be Epsilon),
// regardless of what they pop.
func (a *Automaton) Moves(id StateID, symbol string) []Transition {
	idx := a.bySymbol[id][symbol]
	out := make([]Transition, len(idx))
	for i, j := range idx {
		out[i] = a.transitions[j].clone()
	}
	return out
}

// Reachable returns the states reachable from the start state, in ID order.
func (a *Automaton) Reachable() []StateID {
	seen := make([]bool, len(a.states))
	seen[a.start] = true
	queue := []StateID{a.start}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		for _, idx := range a.bySymbol[q] {
			for _, i := range idx {
				to := a.transitions[i].To
				if !seen[to] {
					seen[to] = true
					queue = append(queue, to)
				}
			}
		}
	}
	var out []StateID
	for id, ok := range seen {
		if ok {
			out = append(out, StateID(id))
		}
	}
	return out
}

// IsComplete reports whether every state has a transition on every symbol.
func (a *Automaton) IsComplete() bool {
	for id := range a.states {
		for _, sym := range a.alphabet {
			if len(a.bySymbol[id][sym]) == 0 {
				return false
			}
		}
	}
	return true
}

// StackAlphabet returns the sorted PDA stack alphabet.
func (a *Automaton) StackAlphabet() []string {
	return append([]string(nil), a.stackAlphabet...)
}

// InitialStack returns the symbol a PDA run starts with.
func (a *Automaton) InitialStack() string { return a.initialStack }

// Acceptance returns the PDA acceptance mode.
func (a *Automaton) Acceptance() AcceptanceMode { return a.acceptance }

// OutputAlphabet returns the sorted transducer output alphabet.
func (a *Automaton) OutputAlphabet() []string {
	return append([]string(nil), a.outputAlphabet...)
}

// RequireTotal reports whether a missing DFA transition is an error rather than a rejection.
func (a *Automaton) RequireTotal() bool { return a.requireTotal }

// Definition converts the automaton back into its serializable form.
// New(a.Definition()) yields an automaton Equal to a.
func (a *Automaton) Definition() Definition {
	def := Definition{
		Type:         a.kind,
		Name:         a.label,
		States:       make([]string, len(a.states)),
		Alphabet:     a.Alphabet(),
		StartState:   a.states[a.start].Name,
		Transitions:  make([]TransitionDef, len(a.transitions)),
		RequireTotal: a.requireTotal,
	}
	for i, s := range a.states {
		def.States[i] = s.Name
		if s.Accepting {
			def.AcceptStates = append(def.AcceptStates, s.Name)
		}
	}
	for i, t := range a.transitions {
		def.Transitions[i] = TransitionDef{
			From:   a.states[t.From].Name,
			Symbol: t.Symbol,
			To:     a.states[t.To].Name,
			Output: t.Output,
			Pop:    t.Pop,
		}
		if len(t.Push) > 0 {
			def.Transitions[i].Push = append([]string(nil), t.Push...)
		}
	}
	switch a.kind {
	case KindPDA:
		def.StackAlphabet = a.StackAlphabet()
		def.InitialStackSymbol = a.initialStack
		def.Acceptance = a.acceptance
	case KindMoore:
		def.StateOutputs = make(map[string]string, len(a.states))
		for _, s := range a.states {
			def.StateOutputs[s.Name] = s.Output
		}
		def.OutputAlphabet = a.OutputAlphabet()
	case KindMealy:
		def.OutputAlphabet = a.OutputAlphabet()
	}
	return def
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
