package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	return types
}

func TestLexer_Tokenize_PlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
	}{
		{name: "empty string", input: "", text: ""},
		{name: "simple text", input: "Hello, world!", text: "Hello, world!"},
		{name: "html is text", input: `<p class="x">Hi</p>`, text: `<p class="x">Hi</p>`},
		{name: "other namespace is text", input: "<x:author />", text: "<x:author />"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(tt.input, zap.NewNop()).Tokenize()
			require.NoError(t, err)
			if tt.text == "" {
				assert.Equal(t, []TokenType{TokenTypeEOF}, tokenTypes(tokens))
				return
			}
			require.Len(t, tokens, 2)
			assert.Equal(t, TokenTypeText, tokens[0].Type)
			assert.Equal(t, tt.text, tokens[0].Value)
			assert.Equal(t, TokenTypeEOF, tokens[1].Type)
		})
	}
}

func TestLexer_Tokenize_SingleTag(t *testing.T) {
	tokens, err := NewLexer(`<r:author:gravatar_url size="40" format='png' />`, nil).Tokenize()
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		TokenTypeOpenTag,
		TokenTypeTagName,
		TokenTypeAttrName, TokenTypeEquals, TokenTypeAttrValue,
		TokenTypeAttrName, TokenTypeEquals, TokenTypeAttrValue,
		TokenTypeSelfClose,
		TokenTypeEOF,
	}, tokenTypes(tokens))
	assert.Equal(t, "author:gravatar_url", tokens[1].Value)
	assert.Equal(t, "size", tokens[2].Value)
	assert.Equal(t, "40", tokens[4].Value)
	assert.Equal(t, "png", tokens[7].Value)
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, tokens[0].Position)
	assert.Equal(t, Position{Offset: 3, Line: 1, Column: 4}, tokens[1].Position)
}

func TestLexer_Tokenize_DoubleTag(t *testing.T) {
	tokens, err := NewLexer("<r:author>\n<b>name</b></r:author>", nil).Tokenize()
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		TokenTypeOpenTag, TokenTypeTagName, TokenTypeCloseTag,
		TokenTypeText,
		TokenTypeBlockClose, TokenTypeTagName, TokenTypeCloseTag,
		TokenTypeEOF,
	}, tokenTypes(tokens))
	assert.Equal(t, "\n<b>name</b>", tokens[3].Value)
	assert.Equal(t, 2, tokens[4].Position.Line)
}

func TestLexer_Tokenize_CustomPrefix(t *testing.T) {
	lexer := NewLexerWithConfig(`<cms:title /> <r:title />`, LexerConfig{Prefix: "cms"}, nil)
	tokens, err := lexer.Tokenize()
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		TokenTypeOpenTag, TokenTypeTagName, TokenTypeSelfClose,
		TokenTypeText,
		TokenTypeEOF,
	}, tokenTypes(tokens))
	assert.Equal(t, " <r:title />", tokens[3].Value)
}

func TestLexer_Tokenize_EscapedQuotes(t *testing.T) {
	tokens, err := NewLexer(`<r:x a="say \"hi\"" />`, nil).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, `say "hi"`, tokens[4].Value)
}

func TestLexer_Tokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "unterminated tag", input: `<r:author`, message: ErrMsgUnterminatedTag},
		{name: "unterminated close", input: `<r:a></r:a`, message: ErrMsgUnterminatedTag},
		{name: "unterminated string", input: `<r:a b="x />`, message: ErrMsgUnterminatedStr},
		{name: "unquoted value", input: `<r:a b=x />`, message: ErrMsgUnexpectedChar},
		{name: "missing equals", input: `<r:a b />`, message: ErrMsgUnexpectedChar},
		{name: "bad name start", input: `<r:1a />`, message: ErrMsgInvalidTagName},
		{name: "trailing separator", input: `<r:authors: />`, message: ErrMsgInvalidTagName},
		{name: "empty component", input: `<r:authors::each />`, message: ErrMsgInvalidTagName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input, nil).Tokenize()
			require.Error(t, err)

			var lexErr *LexerError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.message, lexErr.Message)
		})
	}
}
