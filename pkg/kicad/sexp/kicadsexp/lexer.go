package kicadsexp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenSymbol:
		return "symbol"
	case TokenString:
		return "string"
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a lexical token and the line it started on
type Token struct {
	Type  TokenType
	Value string
	Line  int
}

// Lexer tokenizes S-expressions from an io.Reader
type Lexer struct {
	reader  *bufio.Reader
	line    int
	peeked  rune
	hasPeek bool
}

// NewLexer creates a new lexer positioned at line 1
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r), line: 1}
}

// NextToken reads the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipSpace(); err != nil {
		if errors.Is(err, io.EOF) {
			return Token{Type: TokenEOF, Line: l.line}, nil
		}
		return Token{}, err
	}

	ch, _ := l.peek()
	line := l.line
	switch ch {
	case '(':
		l.read()
		return Token{Type: TokenLeftParen, Value: "(", Line: line}, nil
	case ')':
		l.read()
		return Token{Type: TokenRightParen, Value: ")", Line: line}, nil
	case '"':
		s, err := l.readString()
		return Token{Type: TokenString, Value: s, Line: line}, err
	default:
		s := l.readSymbol()
		return Token{Type: TokenSymbol, Value: s, Line: line}, nil
	}
}

// skipSpace consumes whitespace. KiCad files have no comment syntax.
func (l *Lexer) skipSpace() error {
	for {
		ch, err := l.peek()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(ch) {
			return nil
		}
		l.read()
	}
}

func (l *Lexer) peek() (rune, error) {
	if l.hasPeek {
		return l.peeked, nil
	}
	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked, l.hasPeek = ch, true
	return ch, nil
}

func (l *Lexer) read() (rune, error) {
	ch, err := l.peek()
	if err != nil {
		return 0, err
	}
	l.hasPeek = false
	if ch == '\n' {
		l.line++
	}
	return ch, nil
}

// readString reads a quoted string, handling backslash escapes
func (l *Lexer) readString() (string, error) {
	start := l.line
	l.read()

	var b strings.Builder
	for {
		ch, err := l.read()
		if err != nil {
			return "", fmt.Errorf("line %d: unterminated string", start)
		}
		switch ch {
		case '"':
			return b.String(), nil
		case '\\':
			next, err := l.read()
			if err != nil {
				return "", fmt.Errorf("line %d: unterminated string", start)
			}
			switch next {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(next)
			}
		default:
			b.WriteRune(ch)
		}
	}
}

// readSymbol reads an unquoted atom up to the next delimiter
func (l *Lexer) readSymbol() string {
	var b strings.Builder
	for {
		ch, err := l.peek()
		if err != nil || unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			return b.String()
		}
		l.read()
		b.WriteRune(ch)
	}
}
