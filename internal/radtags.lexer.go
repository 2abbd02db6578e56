package internal

import (
	"strings"

	"go.uber.org/zap"
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	Prefix string // Tag namespace prefix (default: "r")
}

// DefaultLexerConfig returns the default lexer configuration
func DefaultLexerConfig() LexerConfig {
	return LexerConfig{
		Prefix: DefaultPrefix,
	}
}

// open returns the tag open pattern for this config (e.g., "<r:")
func (c LexerConfig) open() string {
	return StrTagOpen + c.prefix() + StrNameSeparator
}

// blockClose returns the closing-tag pattern for this config (e.g., "</r:")
func (c LexerConfig) blockClose() string {
	return StrTagBlockOpen + c.prefix() + StrNameSeparator
}

func (c LexerConfig) prefix() string {
	if c.Prefix == StringValueEmpty {
		return DefaultPrefix
	}
	return c.Prefix
}

// Lexer tokenizes template source into a token stream
type Lexer struct {
	source string
	config LexerConfig
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// NewLexer creates a new lexer with default configuration
func NewLexer(source string, logger *zap.Logger) *Lexer {
	return NewLexerWithConfig(source, DefaultLexerConfig(), logger)
}

// NewLexerWithConfig creates a lexer with custom configuration
func NewLexerWithConfig(source string, config LexerConfig, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		config: config,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Tokenize processes the source and returns a token stream
func (l *Lexer) Tokenize() ([]Token, error) {
	l.logger.Debug(LogMsgTokenizerStart)
	var tokens []Token

	openPattern := l.config.open()
	blockClosePattern := l.config.blockClose()

	for !l.isAtEnd() {
		// Closing tag (</r:name>)
		if l.matchStr(blockClosePattern) {
			pos := l.currentPosition()
			l.advanceN(len(blockClosePattern))
			tokens = append(tokens, markupToken(TokenTypeBlockClose, pos))
			tagTokens, err := l.scanTagContent(true)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tagTokens...)
			continue
		}

		// Opening tag (<r:name ...> or <r:name ... />)
		if l.matchStr(openPattern) {
			pos := l.currentPosition()
			l.advanceN(len(openPattern))
			tokens = append(tokens, markupToken(TokenTypeOpenTag, pos))
			tagTokens, err := l.scanTagContent(false)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tagTokens...)
			continue
		}

		textToken := l.scanText(openPattern, blockClosePattern)
		if textToken.Value != StringValueEmpty {
			tokens = append(tokens, textToken)
		}
	}

	tokens = append(tokens, markupToken(TokenTypeEOF, l.currentPosition()))
	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, len(tokens)))
	return tokens, nil
}

// scanText scans literal content until the next tag opening
func (l *Lexer) scanText(openPattern, blockClosePattern string) Token {
	startPos := l.currentPosition()
	var sb strings.Builder

	for !l.isAtEnd() {
		if l.matchStr(openPattern) || l.matchStr(blockClosePattern) {
			break
		}
		sb.WriteByte(l.advance())
	}

	return newToken(TokenTypeText, sb.String(), startPos)
}

// scanTagContent scans the content inside a tag (name, attributes, closing)
// isBlockClose indicates if this is a closing tag (</r:...)
func (l *Lexer) scanTagContent(isBlockClose bool) ([]Token, error) {
	var tokens []Token

	nameToken, err := l.scanTagName()
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, nameToken)

	l.skipWhitespace()

	if isBlockClose {
		if !l.matchStr(StrTagClose) {
			return nil, l.newUnterminatedTagError()
		}
		pos := l.currentPosition()
		l.advanceN(len(StrTagClose))
		tokens = append(tokens, markupToken(TokenTypeCloseTag, pos))
		return tokens, nil
	}

	for !l.isAtEnd() {
		l.skipWhitespace()

		if l.matchStr(StrTagSelfClose) {
			pos := l.currentPosition()
			l.advanceN(len(StrTagSelfClose))
			tokens = append(tokens, markupToken(TokenTypeSelfClose, pos))
			return tokens, nil
		}

		if l.matchStr(StrTagClose) {
			pos := l.currentPosition()
			l.advanceN(len(StrTagClose))
			tokens = append(tokens, markupToken(TokenTypeCloseTag, pos))
			return tokens, nil
		}

		attrTokens, err := l.scanAttribute()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, attrTokens...)
	}

	return nil, l.newUnterminatedTagError()
}

// scanTagName scans a possibly colon-separated tag name (e.g. "authors:each")
func (l *Lexer) scanTagName() (Token, error) {
	startPos := l.currentPosition()
	var sb strings.Builder

	if !l.isAtEnd() && (isLetter(l.peek()) || l.peek() == '_') {
		sb.WriteByte(l.advance())
	} else {
		return Token{}, l.newInvalidTagNameError()
	}

	for !l.isAtEnd() {
		ch := l.peek()
		if isLetter(ch) || isDigit(ch) || ch == '_' || ch == '-' || ch == CharColon {
			sb.WriteByte(l.advance())
		} else {
			break
		}
	}

	name := sb.String()
	if strings.HasSuffix(name, StrNameSeparator) || strings.Contains(name, StrNameSeparator+StrNameSeparator) {
		return Token{}, l.newInvalidTagNameError()
	}

	return newToken(TokenTypeTagName, name, startPos), nil
}

// scanAttribute scans an attribute name=value pair
func (l *Lexer) scanAttribute() ([]Token, error) {
	var tokens []Token

	nameToken, err := l.scanAttrName()
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, nameToken)

	l.skipWhitespace()

	if l.isAtEnd() || l.peek() != CharEquals {
		return nil, l.newUnexpectedCharError()
	}
	tokens = append(tokens, markupToken(TokenTypeEquals, l.currentPosition()))
	l.advance()

	l.skipWhitespace()

	valueToken, err := l.scanAttrValue()
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, valueToken)

	return tokens, nil
}

// scanAttrName scans an attribute name identifier
func (l *Lexer) scanAttrName() (Token, error) {
	startPos := l.currentPosition()
	var sb strings.Builder

	if !l.isAtEnd() && (isLetter(l.peek()) || l.peek() == '_') {
		sb.WriteByte(l.advance())
	} else {
		return Token{}, l.newUnexpectedCharError()
	}

	for !l.isAtEnd() {
		ch := l.peek()
		if isLetter(ch) || isDigit(ch) || ch == '_' || ch == '-' {
			sb.WriteByte(l.advance())
		} else {
			break
		}
	}

	return newToken(TokenTypeAttrName, sb.String(), startPos), nil
}

// scanAttrValue scans a quoted attribute value
func (l *Lexer) scanAttrValue() (Token, error) {
	startPos := l.currentPosition()

	if l.isAtEnd() {
		return Token{}, l.newUnterminatedStrError()
	}

	quote := l.peek()
	if quote != CharDoubleQuote && quote != CharSingleQuote {
		return Token{}, l.newUnexpectedCharError()
	}
	l.advance()

	var sb strings.Builder
	for !l.isAtEnd() {
		ch := l.peek()

		if ch == quote {
			l.advance()
			return newToken(TokenTypeAttrValue, sb.String(), startPos), nil
		}

		if ch == CharBackslash && l.pos+1 < len(l.source) {
			nextCh := l.source[l.pos+1]
			if nextCh == quote || nextCh == CharBackslash {
				l.advance()
				sb.WriteByte(l.advance())
				continue
			}
		}

		sb.WriteByte(l.advance())
	}

	return Token{}, l.newUnterminatedStrError()
}

// currentPosition returns the current position
func (l *Lexer) currentPosition() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == CharNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.isAtEnd(); i++ {
		l.advance()
	}
}

// matchStr returns true if the remaining source starts with s
func (l *Lexer) matchStr(s string) bool {
	return strings.HasPrefix(l.source[l.pos:], s)
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet {
			l.advance()
		} else {
			break
		}
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) newUnterminatedTagError() error {
	return &LexerError{
		Message:  ErrMsgUnterminatedTag,
		Position: l.currentPosition(),
	}
}

func (l *Lexer) newUnterminatedStrError() error {
	return &LexerError{
		Message:  ErrMsgUnterminatedStr,
		Position: l.currentPosition(),
	}
}

func (l *Lexer) newInvalidTagNameError() error {
	return &LexerError{
		Message:  ErrMsgInvalidTagName,
		Position: l.currentPosition(),
	}
}

func (l *Lexer) newUnexpectedCharError() error {
	return &LexerError{
		Message:  ErrMsgUnexpectedChar,
		Position: l.currentPosition(),
	}
}

// LexerError represents a lexer error with position
type LexerError struct {
	Message  string
	Position Position
}

func (e *LexerError) Error() string {
	return e.Message + " at " + e.Position.String()
}

// Error message constants for lexer
const (
	ErrMsgUnterminatedTag = "unterminated tag"
	ErrMsgUnterminatedStr = "unterminated string literal"
	ErrMsgInvalidTagName  = "invalid tag name"
	ErrMsgUnexpectedChar  = "unexpected character"
)
