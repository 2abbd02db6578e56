package radtags

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-radtags/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParseError(t *testing.T) {
	pos := Position{Line: 5, Column: 10, Offset: 50}
	cause := errors.New("underlying parse issue")
	err := NewParseError(ErrMsgParseFailed, pos, cause)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgParseFailed)
	assert.True(t, errors.Is(err, cause))

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	for key, expected := range map[string]int{MetaKeyLine: 5, MetaKeyColumn: 10, MetaKeyOffset: 50} {
		got, ok := customErr.GetMetadata(key)
		assert.True(t, ok, key)
		assert.Equal(t, strconv.Itoa(expected), got, key)
	}
}

func TestNewTagError(t *testing.T) {
	msg := fmt.Sprintf(ErrFmtInvalidNumberAttr, AttrLimit)
	err := NewTagError(msg, TagNameAuthorsEach, AttrLimit, "ten")

	assert.Equal(t, "`limit' attribute of `each' tag must be a positive number between 1 and 4 digits", msg)
	assert.Contains(t, err.Error(), msg)
	assert.True(t, IsTagError(err))
	assert.False(t, IsNotFound(err))

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	tag, _ := customErr.GetMetadata(MetaKeyTag)
	attr, _ := customErr.GetMetadata(MetaKeyAttribute)
	value, _ := customErr.GetMetadata(MetaKeyValue)
	assert.Equal(t, TagNameAuthorsEach, tag)
	assert.Equal(t, AttrLimit, attr)
	assert.Equal(t, "ten", value)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError(LocalPage, "/missing/")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsTagError(err))
	assert.Contains(t, err.Error(), ErrMsgRecordNotFound)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	key, _ := customErr.GetMetadata(MetaKeyKey)
	assert.Equal(t, "/missing/", key)
}

func TestNewStoreError(t *testing.T) {
	assert.Contains(t, NewStoreError(ErrMsgStoreInvalidRecord, nil).Error(), ErrMsgStoreInvalidRecord)

	cause := errors.New("connection refused")
	err := NewStoreError(ErrMsgStoreConnectFailed, cause)
	assert.True(t, errors.Is(err, cause))
	assert.ErrorIs(t, NewStoreClosedError(), ErrStoreClosed)
}

func TestConvertInternalError(t *testing.T) {
	t.Run("lexer error", func(t *testing.T) {
		err := convertInternalError(&internal.LexerError{
			Message:  internal.ErrMsgUnterminatedTag,
			Position: internal.Position{Line: 3, Column: 4},
		})
		assert.Contains(t, err.Error(), ErrMsgParseFailed)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		line, _ := customErr.GetMetadata(MetaKeyLine)
		assert.Equal(t, "3", line)
	})

	t.Run("undefined tag", func(t *testing.T) {
		err := convertInternalError(internal.NewExecutorError(internal.ErrMsgUndefinedTag, "author:nope", internal.Position{Line: 1, Column: 5}))
		assert.Contains(t, err.Error(), ErrMsgUndefinedTag)
		assert.Equal(t, 1, strings.Count(err.Error(), ErrMsgUndefinedTag))

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		tag, _ := customErr.GetMetadata(MetaKeyTag)
		assert.Equal(t, "author:nope", tag)
		column, _ := customErr.GetMetadata(MetaKeyColumn)
		assert.Equal(t, "5", column)
	})

	t.Run("tag handler error surfaces", func(t *testing.T) {
		tagErr := NewTagError(ErrMsgInvalidOrderAttr, TagNamePagesEach, AttrOrder, "up")
		err := convertInternalError(internal.NewExecutorErrorWithCause(
			internal.ErrMsgTagFailed, TagNamePagesEach, internal.Position{Line: 7, Column: 2}, tagErr))

		assert.Contains(t, err.Error(), ErrMsgInvalidOrderAttr)
		assert.True(t, IsTagError(err))

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		line, _ := customErr.GetMetadata(MetaKeyLine)
		assert.Equal(t, "7", line)
	})

	t.Run("plain handler error is wrapped", func(t *testing.T) {
		cause := errors.New("boom")
		err := convertInternalError(internal.NewExecutorErrorWithCause(
			internal.ErrMsgTagFailed, "custom", internal.Position{Line: 1}, cause))
		assert.Contains(t, err.Error(), ErrMsgExecutionFailed)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("other")
		assert.Equal(t, cause, convertInternalError(cause))
	})
}

func TestLookupStatus(t *testing.T) {
	tests := []struct {
		name string
		id   int
		ok   bool
	}{
		{"draft", 1, true},
		{"Reviewed", 50, true},
		{"PUBLISHED", 100, true},
		{"hidden", 101, true},
		{"all", 0, false},
		{"archived", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := LookupStatus(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, st.ID)
		})
	}
	assert.Len(t, Statuses(), 4)
}

func TestIsPageField(t *testing.T) {
	assert.True(t, IsPageField("published_at"))
	assert.True(t, IsPageField("title"))
	assert.False(t, IsPageField("colour"))
	assert.False(t, IsPageField(""))
}
