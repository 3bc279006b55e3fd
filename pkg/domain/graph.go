package domain

// Overlay carries the dynamic state of a simulation snapshot to highlight on a GraphView.
type Overlay struct {
	Current []StateID
	Visited []StateID
	Taken   []Transition
}

// GraphNode is a state as seen by exporters.
type GraphNode struct {
	ID        StateID
	Name      string
	Start     bool
	Accepting bool
	Output    string
	Current   bool
	Visited   bool
}

// GraphEdge merges every transition between the same pair of states.
type GraphEdge struct {
	From   StateID
	To     StateID
	Labels []string
	Active bool
}

// GraphView is a read-only projection of an automaton for exporters.
// It carries no layout information.
type GraphView struct {
	Kind  Kind
	Label string
	Nodes []GraphNode
	Edges []GraphEdge
}

// Graph projects a into a GraphView, applying overlay when it is not nil.
func (a *Automaton) Graph(overlay *Overlay) GraphView {
	view := GraphView{Kind: a.kind, Label: a.label}

	current := make(map[StateID]bool)
	visited := make(map[StateID]bool)
	taken := make(map[[2]StateID]bool)
	if overlay != nil {
		for _, id := range overlay.Current {
			current[id] = true
		}
		for _, id := range overlay.Visited {
			visited[id] = true
		}
		for _, t := range overlay.Taken {
			taken[[2]StateID{t.From, t.To}] = true
		}
	}

	for _, s := range a.states {
		view.Nodes = append(view.Nodes, GraphNode{
			ID:        s.ID,
			Name:      s.Name,
			Start:     s.ID == a.start,
			Accepting: s.Accepting,
			Output:    s.Output,
			Current:   current[s.ID],
			Visited:   visited[s.ID],
		})
	}

	pos := make(map[[2]StateID]int)
	for _, t := range a.transitions {
		key := [2]StateID{t.From, t.To}
		label := t.Label(a.kind)
		i, ok := pos[key]
		if !ok {
			pos[key] = len(view.Edges)
			view.Edges = append(view.Edges, GraphEdge{From: t.From, To: t.To, Labels: []string{label}, Active: taken[key]})
			continue
		}
		if !contains(view.Edges[i].Labels, label) {
			view.Edges[i].Labels = append(view.Edges[i].Labels, label)
		}
	}
	return view
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
