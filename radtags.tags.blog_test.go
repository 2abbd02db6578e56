package radtags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogTags(t *testing.T) {
	engine, store := newSiteEngine(t)
	env := Env{
		Page:    pageAt(t, store, "/articles/first/"),
		Request: &Request{Scheme: "http", Host: "example.com"},
	}

	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			"technorati",
			`<r:blogtags:technorati />`,
			`<a href="http://technorati.com/cosmos/search.html?url=http://example.com/articles/first/"><img src="/images/blogtags/technorati.gif" title="add to technorati"/></a>`,
		},
		{
			"delicious",
			`<r:blogtags:delicious />`,
			`<a href="http://del.icio.us/post?url=http://example.com/articles/first/&title=First+Post"><img src="/images/blogtags/delicious.gif" title="add to delicious"/></a>`,
		},
		{
			"digg",
			`<r:blogtags:digg />`,
			`<a href="http://digg.com/submit?phase=2&url=http://example.com/articles/first/"><img src="/images/blogtags/digg.gif" title="add to digg"/></a>`,
		},
		{
			"blinklist",
			`<r:blogtags:blinklist />`,
			`<a href="http://blinklist.com/index.php?Action=Blink/addblink.php&url=http://example.com/articles/first/"><img src="/images/blogtags/blinklist.gif" title="add to blinklist"/></a>`,
		},
		{
			"furl",
			`<r:blogtags:furl />`,
			`<a href="http://furl.net/storeIt.jsp?u=http://example.com/articles/first/&t=First+Post"><img src="/images/blogtags/furl.gif" title="add to furl"/></a>`,
		},
		{
			"reddit",
			`<r:blogtags:reddit />`,
			`<a href="http://reddit.com/submit?url=http://example.com/articles/first/&title=First+Post"><img src="/images/blogtags/reddit.gif" title="add to reddit"/></a>`,
		},
		{
			"nested under blogtags",
			`<r:blogtags><r:digg /></r:blogtags>`,
			`<a href="http://digg.com/submit?phase=2&url=http://example.com/articles/first/"><img src="/images/blogtags/digg.gif" title="add to digg"/></a>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.Render(context.Background(), tt.source, env)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestBlogTags_DefaultRequest(t *testing.T) {
	engine, store := newSiteEngine(t)

	out, err := renderAt(t, engine, store, "/about/", `<r:blogtags:technorati />`)
	require.NoError(t, err)
	assert.Contains(t, out, "?url=http://localhost/about/\"")
}

func TestBlogTags_EngineRequest(t *testing.T) {
	engine, store := newSiteEngine(t, WithRequest(Request{Scheme: "https", Host: "blog.example.org:8443"}))

	out, err := renderAt(t, engine, store, "/about/", `<r:blogtags:technorati />`)
	require.NoError(t, err)
	assert.Contains(t, out, "?url=https://blog.example.org:8443/about/\"")
}

func TestBlogTags_EscapesPageURL(t *testing.T) {
	engine, _ := newSiteEngine(t)

	out, err := engine.Render(context.Background(), `<r:blogtags:reddit />`, Env{
		Page:    &Page{URL: "/my page/", Title: "Fish & Chips"},
		Request: &Request{Scheme: "http", Host: "example.com"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "?url=http://example.com/my%20page/&title=Fish+%26+Chips\"")
}

func TestBlogTags_EscapesQueryCharactersInPath(t *testing.T) {
	engine, _ := newSiteEngine(t)

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"ampersand and equals", "/a b&c=d/", "?url=http://example.com/a%20b%26c%3Dd/&title=T\""},
		{"question mark and hash", "/why?/#top", "?url=http://example.com/why%3F/%23top&title=T\""},
		{"plus", "/c++/", "?url=http://example.com/c%2B%2B/&title=T\""},
		{"plain path unchanged", "/articles/first-post/", "?url=http://example.com/articles/first-post/&title=T\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.Render(context.Background(), `<r:blogtags:reddit />`, Env{
				Page:    &Page{URL: tt.url, Title: "T"},
				Request: &Request{Scheme: "http", Host: "example.com"},
			})
			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
		})
	}
}

func TestBlogTags_ImagePath(t *testing.T) {
	engine, store := newSiteEngine(t, WithLibraries(PageTags{}, BlogTags{ImagePath: "/static/icons"}))

	out, err := renderAt(t, engine, store, "/", `<r:blogtags:digg />`)
	require.NoError(t, err)
	assert.Contains(t, out, `<img src="/static/icons/digg.gif" title="add to digg"/>`)
	assert.False(t, engine.HasTag(TagNameAuthor))
}
