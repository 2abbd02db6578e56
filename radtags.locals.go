package radtags

import "github.com/itsatony/go-radtags/internal"

// Request describes the HTTP request a page is rendered for.
type Request struct {
	Scheme string // "http" or "https"
	Host   string // host[:port]
}

// Locals exposes the values scoped to the current tag expansion:
// the current page, author, author list and page list.
// Values set here are visible to the tag body only.
type Locals struct {
	scope *internal.Scope
}

// Page returns the current page, or nil.
func (l *Locals) Page() *Page {
	p, _ := l.get(LocalPage).(*Page)
	return p
}

// SetPage sets the current page for the tag body.
func (l *Locals) SetPage(p *Page) {
	l.scope.Set(LocalPage, p)
}

// Author returns the current author, or nil.
func (l *Locals) Author() *Author {
	a, _ := l.get(LocalAuthor).(*Author)
	return a
}

// SetAuthor sets the current author for the tag body.
func (l *Locals) SetAuthor(a *Author) {
	l.scope.Set(LocalAuthor, a)
}

// Authors returns the author list of the enclosing authors:each.
func (l *Locals) Authors() []*Author {
	a, _ := l.get(LocalAuthors).([]*Author)
	return a
}

// SetAuthors sets the current author list.
func (l *Locals) SetAuthors(a []*Author) {
	l.scope.Set(LocalAuthors, a)
}

// Pages returns the base query for the current page list, if one is set.
func (l *Locals) Pages() (PageQuery, bool) {
	q, ok := l.get(LocalPages).(PageQuery)
	return q, ok
}

// SetPages sets the base query for the current page list.
func (l *Locals) SetPages(q PageQuery) {
	l.scope.Set(LocalPages, q)
}

// Request returns the request being rendered.
func (l *Locals) Request() Request {
	r, _ := l.get(LocalRequest).(Request)
	return r
}

// Get returns an arbitrary local by key.
func (l *Locals) Get(key string) (any, bool) {
	return l.scope.Get(key)
}

// Set stores an arbitrary local by key.
func (l *Locals) Set(key string, value any) {
	l.scope.Set(key, value)
}

func (l *Locals) get(key string) any {
	v, _ := l.scope.Get(key)
	return v
}
