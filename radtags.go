// Package radtags provides author and blog tag libraries for Radius-style
// page templates, together with the small tag engine that renders them.
//
// Tags use an XML-like syntax under a namespace prefix (default "r"):
//
//	<r:author />
//	<r:author><r:name /> &lt;<r:email />&gt;</r:author>
//
// # Basic Usage
//
// Create an engine backed by a store and render a page:
//
//	store, _ := radtags.OpenStore("sqlite", "file:site.db")
//	engine := radtags.MustNew(radtags.WithStore(store))
//	out, err := engine.Render(ctx, `Written by <r:author />`, radtags.Env{Page: page})
//
// # Tag Syntax
//
// Single tags: <r:name attr="value" />
//
// Double tags: <r:name attr="value">body</r:name>
//
// A name may list several tags separated by colons. <r:authors:each> renders
// authors with a body that renders each. Inside a double tag, nested tags are
// resolved against the enclosing names, so <r:name /> inside <r:authors:each>
// finds authors:each:name.
//
// # Author Tags
//
//	author, author:name, author:email, author:bio, author:gravatar_url
//	authors, authors:each (limit, offset, login)
//	pages, pages:count, pages:each (limit, offset, by, order, status, url)
//
// # Blog Tags
//
//	blogtags:technorati, blogtags:delicious, blogtags:digg,
//	blogtags:blinklist, blogtags:furl, blogtags:reddit
//
// # Custom Tags
//
//	engine.MustDefine("shout", func(ctx context.Context, tag *radtags.Tag) (string, error) {
//	    body, err := tag.Expand(ctx)
//	    return strings.ToUpper(body), err
//	})
//
// # Storage
//
// Authors and pages are read through the Store interface. Drivers:
// "memory", "sqlite" (modernc.org/sqlite, or mattn/go-sqlite3 with the
// cgo_sqlite build tag) and "postgres" (lib/pq).
package radtags
