package tui

import (
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/olekukonko/tablewriter"
)

// TransitionTable writes the transition function of a as a table: one row per
// state, one column per input symbol (plus ε for machines that allow it).
// Start states are marked with "→", accepting states with "*".
func TransitionTable(w io.Writer, a *domain.Automaton) error {
	symbols := append([]string(nil), a.Alphabet()...)
	if a.Kind().AllowsEpsilon() {
		symbols = append(symbols, domain.Epsilon)
	}

	header := append([]string{"State"}, symbols...)
	if a.Kind() == domain.KindMoore {
		header = append(header, "Output")
	}

	table := tablewriter.NewWriter(w)
	table.Header(header)

	for _, s := range a.States() {
		row := []string{marker(a, s) + s.Name}
		for _, sym := range symbols {
			row = append(row, cell(a, s.ID, sym))
		}
		if a.Kind() == domain.KindMoore {
			row = append(row, s.Output)
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func marker(a *domain.Automaton, s domain.State) string {
	m := ""
	if s.ID == a.Start() {
		m += "→"
	}
	if s.Accepting {
		m += "*"
	}
	if m != "" {
		m += " "
	}
	return m
}

func cell(a *domain.Automaton, id domain.StateID, symbol string) string {
	var parts []string
	for _, t := range a.TransitionsFrom(id) {
		if t.Symbol != symbol {
			continue
		}
		label := a.Name(t.To)
		switch a.Kind() {
		case domain.KindMealy:
			label += " / " + t.Output
		case domain.KindPDA:
			l := t.Label(domain.KindPDA)
			label += " [" + strings.TrimPrefix(l, t.Symbol+", ") + "]"
		}
		parts = append(parts, label)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
