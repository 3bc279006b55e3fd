package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/emicklei/dot"
)

// DOT renders a graph view in Graphviz syntax. Accepting states are drawn as
// double circles, the current states are filled and the taken edges are bold.
func DOT(view domain.GraphView) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")
	if view.Label != "" {
		g.Attr("label", fmt.Sprintf("%s (%s)", view.Label, view.Kind))
	}

	nodes := make(map[domain.StateID]dot.Node, len(view.Nodes))
	for _, n := range view.Nodes {
		node := g.Node(nodeID(n.ID))
		label := n.Name
		if view.Kind == domain.KindMoore {
			label = fmt.Sprintf("%s / %s", n.Name, displayOutput(n.Output))
		}
		node.Attr("label", label)
		node.Attr("shape", "circle")
		if n.Accepting {
			node.Attr("shape", "doublecircle")
		}
		switch {
		case n.Current:
			node.Attr("style", "filled")
			node.Attr("fillcolor", "#ffeb3b")
		case n.Visited:
			node.Attr("style", "filled")
			node.Attr("fillcolor", "#e1f5fe")
		}
		nodes[n.ID] = node

		if n.Start {
			entry := g.Node("start_")
			entry.Attr("shape", "point")
			entry.Attr("style", "invis")
			g.Edge(entry, node)
		}
	}

	for _, e := range view.Edges {
		edge := g.Edge(nodes[e.From], nodes[e.To]).Attr("label", strings.Join(e.Labels, ", "))
		if e.Active {
			edge.Attr("penwidth", "2.5")
			edge.Attr("color", "#fbc02d")
		}
	}
	return g.String()
}
