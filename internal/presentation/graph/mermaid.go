package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Mermaid produces a Mermaid flowchart from a graph view.
// It applies semantic styling:
// - Accepting: (((Double circle)))
// - Other states: ((Circle))
// - Start: an edge from an invisible entry point
// It also applies overlay styles (Visited/Current) and thickens the edges taken by the last step.
func Mermaid(view domain.GraphView) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	if view.Label != "" {
		fmt.Fprintf(&sb, "    %%%% %s (%s)\n", escapeMermaid(view.Label), view.Kind)
	}

	for _, n := range view.Nodes {
		opener, closer := "((", "))"
		if n.Accepting {
			opener, closer = "(((", ")))"
		}
		label := n.Name
		if view.Kind == domain.KindMoore {
			label = fmt.Sprintf("%s / %s", n.Name, displayOutput(n.Output))
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(n.ID), opener, escapeMermaid(label), closer)
		if n.Start {
			fmt.Fprintf(&sb, "    start_[ ] --> %s\n", nodeID(n.ID))
			sb.WriteString("    style start_ fill:none,stroke:none\n")
		}
	}

	// Link indexes count every arrow, including the entry one.
	link := 0
	for _, n := range view.Nodes {
		if n.Start {
			link++
		}
	}
	var active []string
	for _, e := range view.Edges {
		label := escapeMermaid(strings.Join(e.Labels, ", "))
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodeID(e.From), label, nodeID(e.To))
		if e.Active {
			active = append(active, fmt.Sprint(link))
		}
		link++
	}

	var visited, current []string
	for _, n := range view.Nodes {
		if n.Current {
			current = append(current, nodeID(n.ID))
		} else if n.Visited {
			visited = append(visited, nodeID(n.ID))
		}
	}
	if len(visited)+len(current)+len(active) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		if len(visited) > 0 {
			fmt.Fprintf(&sb, "    class %s visited;\n", strings.Join(visited, ","))
		}
		if len(current) > 0 {
			fmt.Fprintf(&sb, "    class %s current;\n", strings.Join(current, ","))
		}
		if len(active) > 0 {
			fmt.Fprintf(&sb, "    linkStyle %s stroke:#fbc02d,stroke-width:3px;\n", strings.Join(active, ","))
		}
	}
	return sb.String()
}

// nodeID avoids sanitizing user names: state names may hold braces, commas or primes.
func nodeID(id domain.StateID) string {
	return fmt.Sprintf("s%d", id)
}

func escapeMermaid(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func displayOutput(out string) string {
	if out == "" {
		return domain.Epsilon
	}
	return out
}
