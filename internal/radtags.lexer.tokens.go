package internal

import "fmt"

// Position is a location in the template source.
type Position struct {
	Offset int // byte offset
	Line   int // 1-based
	Column int // 1-based
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is one lexeme of Radius markup. Markup tokens (open, close,
// self-close, block close, equals, EOF) carry no value.
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

func newToken(typ TokenType, value string, pos Position) Token {
	return Token{Type: typ, Value: value, Position: pos}
}

func markupToken(typ TokenType, pos Position) Token {
	return Token{Type: typ, Position: pos}
}
