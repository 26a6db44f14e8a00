package kicadsexp

import (
	"fmt"
	"io"
)

// Parser builds nodes from a token stream
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// ParseAll parses all top-level S-expressions from the input
func (p *Parser) ParseAll() ([]Sexp, error) {
	var result []Sexp
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return result, nil
		}
		expr, err := p.parseExpr(tok)
		if err != nil {
			return nil, err
		}
		result = append(result, expr)
	}
}

func (p *Parser) parseExpr(tok Token) (Sexp, error) {
	switch tok.Type {
	case TokenLeftParen:
		return p.parseList(tok.Line)
	case TokenSymbol:
		return &Atom{Value: tok.Value, line: tok.Line}, nil
	case TokenString:
		return &Atom{Value: tok.Value, Quoted: true, line: tok.Line}, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected %v", tok.Line, tok.Type)
	}
}

// parseList reads elements up to the matching ')'. The opening '(' has
// already been consumed.
func (p *Parser) parseList(line int) (Sexp, error) {
	list := &List{line: line}
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenRightParen:
			return list, nil
		case TokenEOF:
			return nil, fmt.Errorf("line %d: unexpected EOF in list opened here", line)
		}
		elem, err := p.parseExpr(tok)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, elem)
	}
}
