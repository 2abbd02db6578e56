package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_ChildInheritsAndShadows(t *testing.T) {
	root := NewScope(map[string]any{"page": "home"})
	child := root.Child()

	val, ok := child.Get("page")
	assert.True(t, ok)
	assert.Equal(t, "home", val)

	child.Set("page", "about")
	val, _ = child.Get("page")
	assert.Equal(t, "about", val)

	val, _ = root.Get("page")
	assert.Equal(t, "home", val, "child writes must not leak to the parent")

	child.Set("author", nil)
	assert.True(t, child.Has("author"))
	assert.False(t, root.Has("author"))
	assert.Same(t, root, child.Parent())
	assert.Nil(t, root.Parent())
}

func TestScope_NilData(t *testing.T) {
	s := NewScope(nil)
	assert.False(t, s.Has("x"))
	s.Set("x", 1)
	assert.True(t, s.Has("x"))
}
