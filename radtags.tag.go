package radtags

import (
	"context"

	"github.com/itsatony/go-radtags/internal"
)

// TagFunc renders a tag. It returns the tag's output or an error that aborts the render.
type TagFunc func(ctx context.Context, tag *Tag) (string, error)

// Tag is the binding a TagFunc receives for one invocation.
type Tag struct {
	binding *internal.Binding
	engine  *Engine
	locals  *Locals
}

func newTag(b *internal.Binding, e *Engine) *Tag {
	return &Tag{
		binding: b,
		engine:  e,
		locals:  &Locals{scope: b.Locals},
	}
}

// Name returns the qualified tag name (e.g. "authors:each:name").
func (t *Tag) Name() string {
	return t.binding.Name
}

// Attr returns an attribute value.
func (t *Tag) Attr(key string) (string, bool) {
	return t.binding.Attrs.Get(key)
}

// AttrDefault returns an attribute value or the fallback when absent.
func (t *Tag) AttrDefault(key, defaultVal string) string {
	return t.binding.Attrs.GetDefault(key, defaultVal)
}

// Attrs returns a copy of all attributes.
func (t *Tag) Attrs() map[string]string {
	return t.binding.Attrs.Map()
}

// Locals returns the locals scoped to this invocation.
func (t *Tag) Locals() *Locals {
	return t.locals
}

// Double reports whether the tag has a body.
func (t *Tag) Double() bool {
	return t.binding.Double()
}

// Single reports whether the tag has no body.
func (t *Tag) Single() bool {
	return t.binding.Single()
}

// Expand renders the tag body.
func (t *Tag) Expand(ctx context.Context) (string, error) {
	return t.binding.Expand(ctx)
}

// Render renders another tag, by name, as a single tag in this tag's scope.
func (t *Tag) Render(ctx context.Context, name string, attrs map[string]string) (string, error) {
	return t.binding.Render(ctx, name, internal.Attributes(attrs))
}

// Position returns where the tag appears in the template source.
func (t *Tag) Position() Position {
	return positionFromInternal(t.binding.Pos)
}

// Engine returns the engine rendering this tag.
func (t *Tag) Engine() *Engine {
	return t.engine
}
