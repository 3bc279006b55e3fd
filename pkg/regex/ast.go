package regex

import (
	"sort"
	"strings"
	"unicode"

	"github.com/aretw0/automata/pkg/domain"
)

// Kind tags an AST node.
type Kind int

const (
	Literal Kind = iota
	Epsilon
	Concat
	Union
	Star
	Plus
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Epsilon:
		return "epsilon"
	case Concat:
		return "concat"
	case Union:
		return "union"
	case Star:
		return "star"
	case Plus:
		return "plus"
	}
	return "unknown"
}

// Node is an immutable regex AST node. Star and Plus only use Left.
type Node struct {
	Kind   Kind
	Symbol string
	Left   *Node
	Right  *Node
}

func lit(s string) *Node           { return &Node{Kind: Literal, Symbol: s} }
func eps() *Node                   { return &Node{Kind: Epsilon} }
func cat(l, r *Node) *Node         { return &Node{Kind: Concat, Left: l, Right: r} }
func alt(l, r *Node) *Node         { return &Node{Kind: Union, Left: l, Right: r} }
func repeat(k Kind, n *Node) *Node { return &Node{Kind: k, Left: n} }

// String renders the node in a fully parenthesized form that parses back to the same tree.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Kind {
	case Literal:
		if strings.ContainsAny(n.Symbol, `*+|()\`) || strings.IndexFunc(n.Symbol, unicode.IsSpace) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteString(n.Symbol)
	case Epsilon:
		sb.WriteString(domain.Epsilon)
	case Concat:
		sb.WriteByte('(')
		n.Left.write(sb)
		n.Right.write(sb)
		sb.WriteByte(')')
	case Union:
		sb.WriteByte('(')
		n.Left.write(sb)
		sb.WriteByte('|')
		n.Right.write(sb)
		sb.WriteByte(')')
	case Star:
		n.Left.write(sb)
		sb.WriteByte('*')
	case Plus:
		n.Left.write(sb)
		sb.WriteByte('+')
	}
}

// Symbols returns the sorted set of literal symbols used by n.
func Symbols(n *Node) []string {
	set := make(map[string]bool)
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Kind == Literal {
			set[n.Symbol] = true
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(n)

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
