package radtags

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageTags(t *testing.T) {
	engine := MustNew()
	page := &Page{
		Title:       "Hello",
		URL:         "/hello/",
		Slug:        "hello",
		PublishedAt: time.Date(2008, 3, 4, 5, 6, 7, 0, time.UTC),
	}

	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"title", `<r:title />`, "Hello"},
		{"url", `<r:url />`, "/hello/"},
		{"slug", `<r:slug />`, "hello"},
		{"published_at default format", `<r:published_at />`, "2008-03-04T05:06:07Z"},
		{"published_at custom format", `<r:published_at format="Jan 2, 2006" />`, "Mar 4, 2008"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.Render(context.Background(), tt.source, Env{Page: page})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestPageTags_NoPage(t *testing.T) {
	engine := MustNew()

	out, err := engine.Render(context.Background(), `[<r:title />][<r:url />][<r:published_at />]`, Env{})
	require.NoError(t, err)
	assert.Equal(t, "[][][]", out)
}

func TestPageTags_Unpublished(t *testing.T) {
	engine := MustNew()

	out, err := engine.Render(context.Background(), `[<r:published_at />]`, Env{Page: &Page{Title: "Draft"}})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}
