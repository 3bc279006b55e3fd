package regex

import (
	"unicode"

	"github.com/aretw0/automata/pkg/domain"
)

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokEpsilon
	tokStar
	tokPlus
	tokBar
	tokOpen
	tokClose
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Parse turns pattern into an AST. Failures are reported as *domain.SyntaxError
// carrying the 0-based rune position of the offending character.
// An empty pattern denotes ε.
func Parse(pattern string) (*Node, error) {
	toks, err := lex(pattern)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, end: len([]rune(pattern))}

	n, err := p.union()
	if err != nil {
		return nil, err
	}
	if t, ok := p.peek(); ok {
		return nil, &domain.SyntaxError{Pos: t.pos, Char: t.text, Reason: "unmatched ')'"}
	}
	return n, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) *Node {
	n, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return n
}

func lex(pattern string) ([]token, error) {
	runes := []rune(pattern)
	var toks []token
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '\\':
			if i+1 >= len(runes) {
				return nil, &domain.SyntaxError{Pos: i, Char: `\`, Reason: "dangling escape"}
			}
			i++
			switch {
			case runes[i] == 'e':
				toks = append(toks, token{kind: tokEpsilon, text: `\e`, pos: i - 1})
			case domain.IsEpsilon(string(runes[i])):
				return nil, &domain.SyntaxError{Pos: i - 1, Char: string(runes[i]), Reason: "ε cannot be escaped into a literal"}
			default:
				toks = append(toks, token{kind: tokLiteral, text: string(runes[i]), pos: i - 1})
			}
		case domain.IsEpsilon(string(r)):
			toks = append(toks, token{kind: tokEpsilon, text: string(r), pos: i})
		case r == '*':
			toks = append(toks, token{kind: tokStar, text: "*", pos: i})
		case r == '+':
			toks = append(toks, token{kind: tokPlus, text: "+", pos: i})
		case r == '|':
			toks = append(toks, token{kind: tokBar, text: "|", pos: i})
		case r == '(':
			toks = append(toks, token{kind: tokOpen, text: "(", pos: i})
		case r == ')':
			toks = append(toks, token{kind: tokClose, text: ")", pos: i})
		default:
			toks = append(toks, token{kind: tokLiteral, text: string(r), pos: i})
		}
	}
	return toks, nil
}

type parser struct {
	toks []token
	i    int
	end  int
}

func (p *parser) peek() (token, bool) {
	if p.i >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.i], true
}

// union := concat ('|' concat)*
func (p *parser) union() (*Node, error) {
	left, err := p.concat()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokBar {
			break
		}
		if left == nil {
			return nil, &domain.SyntaxError{Pos: t.pos, Char: t.text, Reason: "empty alternative"}
		}
		p.i++
		right, err := p.concat()
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, &domain.SyntaxError{Pos: t.pos, Char: t.text, Reason: "empty alternative"}
		}
		left = alt(left, right)
	}
	if left == nil {
		return eps(), nil
	}
	return left, nil
}

// concat := postfix*, returning nil when no factor was found.
func (p *parser) concat() (*Node, error) {
	var left *Node
	for {
		t, ok := p.peek()
		if !ok || t.kind == tokBar || t.kind == tokClose {
			return left, nil
		}
		n, err := p.postfix()
		if err != nil {
			return nil, err
		}
		if left == nil {
			left = n
		} else {
			left = cat(left, n)
		}
	}
}

// postfix := atom ('*' | '+')*
func (p *parser) postfix() (*Node, error) {
	n, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		switch {
		case ok && t.kind == tokStar:
			n = repeat(Star, n)
		case ok && t.kind == tokPlus:
			n = repeat(Plus, n)
		default:
			return n, nil
		}
		p.i++
	}
}

func (p *parser) atom() (*Node, error) {
	t, _ := p.peek()
	p.i++
	switch t.kind {
	case tokLiteral:
		return lit(t.text), nil
	case tokEpsilon:
		return eps(), nil
	case tokStar, tokPlus:
		return nil, &domain.SyntaxError{Pos: t.pos, Char: t.text, Reason: "nothing to repeat"}
	case tokOpen:
		inner, err := p.union()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokClose {
			return nil, &domain.SyntaxError{Pos: t.pos, Char: t.text, Reason: "unmatched '('"}
		}
		p.i++
		return inner, nil
	}
	return nil, &domain.SyntaxError{Pos: t.pos, Char: t.text, Reason: "unexpected token"}
}
