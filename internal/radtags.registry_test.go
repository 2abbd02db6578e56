package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constTag(out string) TagFunc {
	return func(ctx context.Context, b *Binding) (string, error) {
		return out, nil
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		reg := NewRegistry(nil)
		require.NoError(t, reg.Register("author:name", constTag("x")))
		assert.Equal(t, 1, reg.Count())
		assert.True(t, reg.Has("author:name"))
	})

	t.Run("nil handler", func(t *testing.T) {
		reg := NewRegistry(nil)
		err := reg.Register("author", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNilHandler)
	})

	t.Run("empty tag name", func(t *testing.T) {
		reg := NewRegistry(nil)
		err := reg.Register("", constTag("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEmptyTagName)
	})

	t.Run("duplicate registration - first-come-wins", func(t *testing.T) {
		reg := NewRegistry(nil)
		require.NoError(t, reg.Register("author", constTag("first")))

		err := reg.Register("author", constTag("second"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgHandlerAlreadyExists)

		fn, ok := reg.Get("author")
		require.True(t, ok)
		out, err := fn(context.Background(), &Binding{})
		require.NoError(t, err)
		assert.Equal(t, "first", out)
	})
}

func TestRegistry_MustRegister(t *testing.T) {
	reg := NewRegistry(nil)
	assert.NotPanics(t, func() { reg.MustRegister("a", constTag("a")) })
	assert.Panics(t, func() { reg.MustRegister("a", constTag("a")) })
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry(nil)
	reg.MustRegister("pages:each", constTag(""))
	reg.MustRegister("author", constTag(""))
	reg.MustRegister("pages", constTag(""))

	assert.Equal(t, []string{"author", "pages", "pages:each"}, reg.List())
}
