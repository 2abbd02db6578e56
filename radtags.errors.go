package radtags

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-radtags/internal"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Parse errors
	ErrMsgParseFailed = "template parsing failed"

	// Execution errors
	ErrMsgExecutionFailed = "template execution failed"
	ErrMsgUndefinedTag    = "undefined tag"

	// Tag attribute errors, worded as template authors know them
	ErrFmtInvalidNumberAttr = "`%s' attribute of `each' tag must be a positive number between 1 and 4 digits"
	ErrMsgInvalidByAttr     = "`by' attribute of `each' tag must be set to a valid field name"
	ErrMsgInvalidOrderAttr  = "`order' attribute of `each' tag must be set to either \"asc\" or \"desc\""
	ErrMsgInvalidStatusAttr = "`status' attribute of `each' tag must be set to a valid status"

	// Registry errors
	ErrMsgTagRegistration = "tag registration failed"
	ErrMsgNilLibrary      = "tag library cannot be nil"
	ErrMsgFilterExists    = "text filter already registered"
	ErrMsgUnknownFilter   = "unknown text filter"
	ErrMsgFilterFailed    = "text filter failed"
	ErrMsgNilFilter       = "text filter cannot be nil"

	// Store errors
	ErrMsgRecordNotFound       = "record not found"
	ErrMsgStoreClosed          = "store is closed"
	ErrMsgStoreQueryFailed     = "store query failed"
	ErrMsgStoreConnectFailed   = "store connection failed"
	ErrMsgStoreMigrationFailed = "store migration failed"
	ErrMsgStoreEmptyDSN        = "store connection string cannot be empty"
	ErrMsgStoreDriverNotFound  = "store driver not found"
	ErrMsgStoreDriverExists    = "store driver already registered"
	ErrMsgStoreNilDriver       = "store driver cannot be nil"
	ErrMsgStoreInvalidRecord   = "invalid record"
	ErrMsgStoreDuplicateLogin  = "author login already exists"
	ErrMsgStoreDuplicateURL    = "page url already exists"
	ErrMsgFixturesDecodeFailed = "fixtures decoding failed"
)

// Error code constants for categorization
const (
	ErrCodeParse    = "RADTAGS_PARSE"
	ErrCodeExec     = "RADTAGS_EXEC"
	ErrCodeTag      = "RADTAGS_TAG"
	ErrCodeRegistry = "RADTAGS_REGISTRY"
	ErrCodeFilter   = "RADTAGS_FILTER"
	ErrCodeStore    = "RADTAGS_STORE"
)

// Sentinel causes, usable with errors.Is through every wrapping layer.
var (
	ErrInvalidAttribute = errors.New("invalid tag attribute")
	ErrNotFound         = errors.New("record not found")
	ErrUnknownFilter    = errors.New("unknown text filter")
	ErrStoreClosed      = errors.New("store is closed")
)

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

func positionFromInternal(p internal.Position) Position {
	return Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// NewParseError creates a parse error with position context
func NewParseError(msg string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeParse, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeParse, msg)
	}
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewExecutionError creates an execution error with tag context
func NewExecutionError(msg string, tagName string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeExec, msg)
	} else {
		err = cuserr.NewInternalError(ErrCodeExec, nil)
	}
	return err.
		WithMetadata(MetaKeyTag, tagName).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column))
}

// NewUndefinedTagError creates the error for a tag name no library defines.
// The name and position live in metadata only.
func NewUndefinedTagError(tagName string, pos Position) error {
	return cuserr.NewValidationError(ErrCodeExec, ErrMsgUndefinedTag).
		WithMetadata(MetaKeyTag, tagName).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column))
}

// NewTagError creates the validation error raised for a malformed tag attribute.
func NewTagError(msg string, tagName string, attrName string, value string) error {
	return cuserr.WrapStdError(ErrInvalidAttribute, ErrCodeTag, msg).
		WithMetadata(MetaKeyTag, tagName).
		WithMetadata(MetaKeyAttribute, attrName).
		WithMetadata(MetaKeyValue, value)
}

// NewRegistryError creates a tag or library registration error
func NewRegistryError(msg string, tagName string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeRegistry, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeRegistry, msg)
	}
	return err.WithMetadata(MetaKeyTag, tagName)
}

// NewUnknownFilterError creates an error for a bio filter id with no registered filter
func NewUnknownFilterError(filterID string) error {
	return cuserr.WrapStdError(ErrUnknownFilter, ErrCodeFilter, ErrMsgUnknownFilter).
		WithMetadata(MetaKeyFilter, filterID)
}

// NewFilterError wraps a failure inside a text filter
func NewFilterError(filterID string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeFilter, ErrMsgFilterFailed).
		WithMetadata(MetaKeyFilter, filterID)
}

// NewFilterExistsError creates a filter collision error
func NewFilterExistsError(filterID string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgFilterExists).
		WithMetadata(MetaKeyFilter, filterID)
}

// NewNotFoundError creates a store lookup miss
func NewNotFoundError(resource string, key string) error {
	return cuserr.WrapStdError(ErrNotFound, ErrCodeStore, ErrMsgRecordNotFound).
		WithMetadata(MetaKeyResource, resource).
		WithMetadata(MetaKeyKey, key)
}

// NewStoreClosedError creates an error for use after Close
func NewStoreClosedError() error {
	return cuserr.WrapStdError(ErrStoreClosed, ErrCodeStore, ErrMsgStoreClosed)
}

// NewStoreError wraps a backend failure
func NewStoreError(msg string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeStore, msg)
	}
	return cuserr.WrapStdError(cause, ErrCodeStore, msg)
}

// NewStoreDriverNotFoundError creates an error for an unregistered driver name
func NewStoreDriverNotFoundError(driver string) error {
	return cuserr.NewValidationError(ErrCodeStore, ErrMsgStoreDriverNotFound).
		WithMetadata(MetaKeyDriver, driver)
}

// IsNotFound reports whether err is a store lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTagError reports whether err stems from a malformed tag attribute.
func IsTagError(err error) bool {
	return errors.Is(err, ErrInvalidAttribute)
}

// convertInternalError maps lexer, parser and executor errors onto cuserr errors.
func convertInternalError(err error) error {
	var lexErr *internal.LexerError
	if errors.As(err, &lexErr) {
		return NewParseError(ErrMsgParseFailed, positionFromInternal(lexErr.Position), err)
	}

	var parseErr *internal.ParserError
	if errors.As(err, &parseErr) {
		pe := NewParseError(ErrMsgParseFailed, positionFromInternal(parseErr.Position), err)
		if parseErr.ExpectedTag != "" || parseErr.ActualTag != "" {
			var ce *cuserr.CustomError
			if errors.As(pe, &ce) {
				return ce.
					WithMetadata(MetaKeyExpected, parseErr.ExpectedTag).
					WithMetadata(MetaKeyActual, parseErr.ActualTag)
			}
		}
		return pe
	}

	var execErr *internal.ExecutorError
	if errors.As(err, &execErr) {
		// Errors raised by tag handlers surface as-is, located in the template.
		var tagErr *cuserr.CustomError
		if execErr.Cause != nil && errors.As(execErr.Cause, &tagErr) {
			if _, ok := tagErr.GetMetadata(MetaKeyTag); !ok {
				tagErr = tagErr.WithMetadata(MetaKeyTag, execErr.TagName)
			}
			return tagErr.
				WithMetadata(MetaKeyLine, strconv.Itoa(execErr.Position.Line)).
				WithMetadata(MetaKeyColumn, strconv.Itoa(execErr.Position.Column))
		}

		if execErr.Message == internal.ErrMsgUndefinedTag {
			return NewUndefinedTagError(execErr.TagName, positionFromInternal(execErr.Position))
		}
		return NewExecutionError(ErrMsgExecutionFailed, execErr.TagName, positionFromInternal(execErr.Position), err)
	}

	return err
}
