package validator

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Finding is one structural remark about a well-formed automaton.
type Finding struct {
	Severity Severity
	State    string
	Message  string
}

func (f Finding) String() string {
	if f.State == "" {
		return fmt.Sprintf("%s: %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("%s: state %q %s", f.Severity, f.State, f.Message)
}

// Lint inspects an automaton that already passed construction and reports states that can never
// be visited, states that can never lead to acceptance, unused symbols and partial functions.
func Lint(a *domain.Automaton) []Finding {
	var findings []Finding

	reachable := make([]bool, a.Len())
	for _, id := range a.Reachable() {
		reachable[id] = true
	}
	for id, ok := range reachable {
		if !ok {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				State:    a.Name(domain.StateID(id)),
				Message:  "is unreachable from the start state",
			})
		}
	}

	if acceptor(a) {
		if len(a.Accepting()) == 0 {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Message:  "no accepting states: the language is empty",
			})
		} else {
			live := coreachable(a)
			for id := range reachable {
				if reachable[id] && !live[id] {
					findings = append(findings, Finding{
						Severity: SeverityNote,
						State:    a.Name(domain.StateID(id)),
						Message:  "cannot reach an accepting state",
					})
				}
			}
		}
	}

	used := make(map[string]bool)
	for _, t := range a.Transitions() {
		used[t.Symbol] = true
	}
	for _, sym := range a.Alphabet() {
		if !used[sym] {
			findings = append(findings, Finding{
				Severity: SeverityNote,
				Message:  fmt.Sprintf("symbol %q is never read", sym),
			})
		}
	}

	switch a.Kind() {
	case domain.KindDFA, domain.KindMealy, domain.KindMoore:
		if !a.IsComplete() {
			findings = append(findings, Finding{
				Severity: SeverityNote,
				Message:  "transition function is partial",
			})
		}
	}
	return findings
}

func acceptor(a *domain.Automaton) bool {
	switch a.Kind() {
	case domain.KindDFA, domain.KindNFA, domain.KindENFA:
		return true
	case domain.KindPDA:
		return a.Acceptance() == domain.AcceptFinalState
	}
	return false
}

// coreachable crawls the transition graph backwards from the accepting states.
// PDA stack conditions are ignored, so the result over-approximates.
func coreachable(a *domain.Automaton) []bool {
	incoming := make([][]domain.StateID, a.Len())
	for _, t := range a.Transitions() {
		incoming[t.To] = append(incoming[t.To], t.From)
	}

	live := make([]bool, a.Len())
	queue := a.Accepting()
	for _, id := range queue {
		live[id] = true
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, from := range incoming[current] {
			if !live[from] {
				live[from] = true
				queue = append(queue, from)
			}
		}
	}
	return live
}
