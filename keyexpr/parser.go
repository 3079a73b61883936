package keyexpr

import (
	"fmt"
	"strconv"
)

// NodeType classifies key elements.
type NodeType int

const (
	NodeInt NodeType = iota
	NodeName
)

// Node is one wheel reference or one position.
type Node struct {
	Type   NodeType
	IntVal int
	Name   string
	Pos    int // byte offset in the source
}

func (n *Node) String() string {
	if n.Type == NodeInt {
		return strconv.Itoa(n.IntVal)
	}
	return n.Name
}

// Key is a parsed key expression: a wheel chain and optional start positions.
//
//	key       = wheels [ "@" positions ]
//	wheels    = ref { [ "," | "-" ] ref }
//	positions = ref { [ "," | "-" ] ref }
type Key struct {
	Source    string
	Wheels    []*Node
	Positions []*Node
}

// Parser is a recursive-descent parser for key expressions.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse parses a key expression such as "V I VII @ F R X" or "5,1,7 @ 5,17,23".
func Parse(input string) (*Key, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	key := &Key{Source: input}

	key.Wheels, err = p.parseList()
	if err != nil {
		return nil, err
	}
	if len(key.Wheels) == 0 {
		return nil, fmt.Errorf("key has no wheels")
	}

	if p.peek().Type == TokAt {
		p.advance()
		key.Positions, err = p.parseList()
		if err != nil {
			return nil, err
		}
		if len(key.Positions) == 0 {
			return nil, fmt.Errorf("expected positions after '@' at position %d", p.peek().Pos)
		}
	}

	if _, err := p.expect(TokEOF); err != nil {
		return nil, err
	}
	return key, nil
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	t := p.advance()
	if t.Type != tt {
		return t, fmt.Errorf("expected %s, got %q at position %d", tt, t.Val, t.Pos)
	}
	return t, nil
}

// parseList reads refs separated by optional commas or dashes. A separator
// must be followed by another ref.
func (p *Parser) parseList() ([]*Node, error) {
	var nodes []*Node
	for {
		tok := p.peek()
		switch tok.Type {
		case TokInt, TokIdent:
			node, err := p.parseRef()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case TokComma, TokDash:
			if len(nodes) == 0 {
				return nil, fmt.Errorf("unexpected %s at position %d", tok.Type, tok.Pos)
			}
			p.advance()
			if next := p.peek(); next.Type != TokInt && next.Type != TokIdent {
				return nil, fmt.Errorf("expected name or number after %s at position %d", tok.Type, next.Pos)
			}
		default:
			return nodes, nil
		}
	}
}

func (p *Parser) parseRef() (*Node, error) {
	tok := p.advance()
	switch tok.Type {
	case TokInt:
		v, err := strconv.Atoi(tok.Val)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", tok.Val)
		}
		return &Node{Type: NodeInt, IntVal: v, Pos: tok.Pos}, nil
	case TokIdent:
		return &Node{Type: NodeName, Name: tok.Val, Pos: tok.Pos}, nil
	default:
		return nil, fmt.Errorf("unexpected token %q at position %d", tok.Val, tok.Pos)
	}
}
