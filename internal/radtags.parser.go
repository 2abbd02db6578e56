package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// Parser produces an AST from a token stream
type Parser struct {
	tokens []Token
	pos    int
	logger *zap.Logger
}

// NewParser creates a new parser for the given token stream
func NewParser(tokens []Token, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldTokens, len(tokens)))
	return &Parser{
		tokens: tokens,
		pos:    0,
		logger: logger,
	}
}

// Parse produces the AST root node from the token stream
func (p *Parser) Parse() (*RootNode, error) {
	p.logger.Debug(LogMsgParserStart)

	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}

	// A closing tag with no matching opener stops parseNodes early
	if p.isBlockClose() {
		p.advance()
		return nil, p.newMismatchedTagError(StringValueEmpty, p.current().Value)
	}

	root := &RootNode{Children: nodes}
	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(nodes)))
	return root, nil
}

// parseNodes parses a sequence of nodes until EOF or a closing tag
func (p *Parser) parseNodes() ([]Node, error) {
	var nodes []Node

	for !p.isAtEnd() && !p.isBlockClose() {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}

	return nodes, nil
}

// parseNode parses a single node (text or tag)
func (p *Parser) parseNode() (Node, error) {
	tok := p.current()

	switch tok.Type {
	case TokenTypeText:
		p.advance()
		return NewTextNode(tok.Value, tok.Position), nil
	case TokenTypeOpenTag:
		return p.parseTag()
	default:
		return nil, p.newUnexpectedTokenError(tok)
	}
}

// parseTag parses a single or double tag
func (p *Parser) parseTag() (Node, error) {
	openTok := p.advance()

	nameTok := p.current()
	if nameTok.Type != TokenTypeTagName {
		return nil, p.newExpectedTokenError(TokenTypeTagName, nameTok)
	}
	p.advance()

	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	endTok := p.current()
	switch endTok.Type {
	case TokenTypeSelfClose:
		p.advance()
		return NewSelfClosingTag(nameTok.Value, attrs, openTok.Position), nil
	case TokenTypeCloseTag:
		p.advance()
		return p.parseBlockTag(nameTok.Value, attrs, openTok.Position)
	default:
		return nil, p.newUnexpectedTokenError(endTok)
	}
}

// parseBlockTag parses the body and closing of a double tag
func (p *Parser) parseBlockTag(tagName string, attrs Attributes, pos Position) (Node, error) {
	children, err := p.parseNodes()
	if err != nil {
		return nil, err
	}

	if !p.isBlockClose() {
		return nil, p.newMismatchedTagError(tagName, StringValueEmpty)
	}
	p.advance()

	closeNameTok := p.current()
	if closeNameTok.Type != TokenTypeTagName {
		return nil, p.newExpectedTokenError(TokenTypeTagName, closeNameTok)
	}
	if closeNameTok.Value != tagName {
		return nil, p.newMismatchedTagError(tagName, closeNameTok.Value)
	}
	p.advance()

	closeTok := p.current()
	if closeTok.Type != TokenTypeCloseTag {
		return nil, p.newExpectedTokenError(TokenTypeCloseTag, closeTok)
	}
	p.advance()

	return NewBlockTag(tagName, attrs, children, pos), nil
}

// parseAttributes parses name="value" pairs until the tag end
func (p *Parser) parseAttributes() (Attributes, error) {
	attrs := make(Attributes)

	for !p.isAtEnd() && p.current().Type == TokenTypeAttrName {
		attrName := p.advance().Value

		if p.current().Type != TokenTypeEquals {
			return nil, p.newExpectedTokenError(TokenTypeEquals, p.current())
		}
		p.advance()

		if p.current().Type != TokenTypeAttrValue {
			return nil, p.newExpectedTokenError(TokenTypeAttrValue, p.current())
		}
		attrs[attrName] = p.advance().Value
	}

	return attrs, nil
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenTypeEOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token
func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) isAtEnd() bool {
	return p.current().Type == TokenTypeEOF
}

func (p *Parser) isBlockClose() bool {
	return p.current().Type == TokenTypeBlockClose
}

func (p *Parser) newUnexpectedTokenError(tok Token) error {
	return &ParserError{
		Message:  ErrMsgUnexpectedToken,
		Position: tok.Position,
		Token:    tok,
	}
}

func (p *Parser) newExpectedTokenError(expected TokenType, actual Token) error {
	return &ParserError{
		Message:  ErrMsgExpectedToken,
		Position: actual.Position,
		Expected: expected,
		Token:    actual,
	}
}

func (p *Parser) newMismatchedTagError(expected, actual string) error {
	return &ParserError{
		Message:     ErrMsgMismatchedTag,
		Position:    p.current().Position,
		ExpectedTag: expected,
		ActualTag:   actual,
	}
}

// ParserError represents a parser error with context
type ParserError struct {
	Message     string
	Position    Position
	Token       Token
	Expected    TokenType
	ExpectedTag string
	ActualTag   string
}

func (e *ParserError) Error() string {
	if e.ExpectedTag != StringValueEmpty || e.ActualTag != StringValueEmpty {
		return fmt.Sprintf(ErrFmtMismatch, e.Message, e.ExpectedTag, e.ActualTag, e.Position.String())
	}
	return fmt.Sprintf(ErrFmtWithPosition, e.Message, e.Position.String())
}

// Parser error message constants
const (
	ErrMsgUnexpectedToken = "unexpected token"
	ErrMsgExpectedToken   = "expected token"
	ErrMsgMismatchedTag   = "mismatched closing tag"
	ErrFmtMismatch        = "%s (expected %q, got %q) at %s"
)
