package internal

// TokenType represents the type of a lexical token
type TokenType string

// Token type constants
const (
	TokenTypeText       TokenType = "TEXT"
	TokenTypeOpenTag    TokenType = "OPEN_TAG"
	TokenTypeCloseTag   TokenType = "CLOSE_TAG"
	TokenTypeSelfClose  TokenType = "SELF_CLOSE"
	TokenTypeBlockClose TokenType = "BLOCK_CLOSE"
	TokenTypeTagName    TokenType = "TAG_NAME"
	TokenTypeAttrName   TokenType = "ATTR_NAME"
	TokenTypeAttrValue  TokenType = "ATTR_VALUE"
	TokenTypeEquals     TokenType = "EQUALS"
	TokenTypeEOF        TokenType = "EOF"
)

// Character constants
const (
	CharEquals      = '='
	CharDoubleQuote = '"'
	CharSingleQuote = '\''
	CharBackslash   = '\\'
	CharColon       = ':'
	CharNewline     = '\n'
	CharSpace       = ' '
	CharTab         = '\t'
	CharCarriageRet = '\r'
)

// Tag markup constants. The prefix sits between these and the tag name:
// <r:name>, </r:name>, <r:name />.
const (
	StrTagOpen       = "<"
	StrTagBlockOpen  = "</"
	StrTagClose      = ">"
	StrTagSelfClose  = "/>"
	StrNameSeparator = ":"
	DefaultPrefix    = "r"
)

// Log message constants
const (
	LogMsgLexerCreated       = "lexer created"
	LogMsgTokenizerStart     = "starting tokenization"
	LogMsgTokenizerEnd       = "tokenization complete"
	LogMsgParserCreated      = "parser created"
	LogMsgParserStart        = "starting parse"
	LogMsgParserEnd          = "parse complete"
	LogMsgExecutorCreated    = "executor created"
	LogMsgExecutorStart      = "starting execution"
	LogMsgExecutorEnd        = "execution complete"
	LogMsgTagInvoked         = "tag invoked"
	LogMsgTagQualified       = "tag name qualified"
	LogMsgTagComplete        = "tag complete"
	LogMsgRegistryCreated    = "registry created"
	LogMsgHandlerRegistered  = "tag handler registered"
	LogMsgHandlerCollision   = "tag handler registration collision - first-come-wins"
)

// Log field constants
const (
	LogFieldSource    = "source_len"
	LogFieldTokens    = "tokens"
	LogFieldNodes     = "nodes"
	LogFieldTag       = "tag"
	LogFieldQualified = "qualified"
	LogFieldDepth     = "depth"
	LogFieldTagName   = "tag_name"
)

// Display constants
const (
	StringValueEmpty = ""
)

// Error format strings
const (
	ErrFmtWithPosition       = "%s at %s"
	ErrFmtWithTagAndPosition = "%s [%s] at %s"
	ErrFmtWithCause          = "%s: %v"
	ErrFmtTagMessage         = "%s: %s"
)

// Default configuration values
const (
	DefaultMaxDepth = 100
)
