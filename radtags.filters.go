package radtags

import (
	"bytes"
	"sort"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// TextFilter transforms author-supplied text such as a bio before output.
type TextFilter interface {
	// Name is the filter id stored on records, e.g. "Markdown".
	Name() string

	// Filter returns the transformed text.
	Filter(text string) (string, error)
}

// FilterRegistry holds the text filters known to an engine.
// It is safe for concurrent use.
type FilterRegistry struct {
	mu      sync.RWMutex
	filters map[string]TextFilter
}

// NewFilterRegistry creates a registry with the built-in Markdown and
// SmartyPants filters.
func NewFilterRegistry() *FilterRegistry {
	r := &FilterRegistry{filters: make(map[string]TextFilter)}
	r.filters[FilterNameMarkdown] = NewMarkdownFilter()
	r.filters[FilterNameSmartyPants] = NewSmartyPantsFilter()
	return r
}

// Register adds a filter. Built-ins can be replaced by registering the same name;
// any other collision is an error.
func (r *FilterRegistry) Register(f TextFilter) error {
	if f == nil {
		return NewRegistryError(ErrMsgNilFilter, "", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := f.Name()
	if existing, ok := r.filters[name]; ok && !isBuiltinFilter(existing) {
		return NewFilterExistsError(name)
	}
	r.filters[name] = f
	return nil
}

// Get looks up a filter by id. Ids are accepted with or without the
// "Filter" suffix ("Markdown" and "MarkdownFilter" are the same filter).
func (r *FilterRegistry) Get(id string) (TextFilter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id = strings.TrimSpace(id)
	if f, ok := r.filters[id]; ok {
		return f, true
	}
	f, ok := r.filters[strings.TrimSuffix(id, FilterNameSuffix)]
	return f, ok
}

// Apply runs the filter with the given id over text.
// A blank id returns text unchanged.
func (r *FilterRegistry) Apply(id, text string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return text, nil
	}
	f, ok := r.Get(id)
	if !ok {
		return "", NewUnknownFilterError(id)
	}
	out, err := f.Filter(text)
	if err != nil {
		return "", NewFilterError(id, err)
	}
	return out, nil
}

// List returns the registered filter names in sorted order.
func (r *FilterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isBuiltinFilter(f TextFilter) bool {
	switch f.(type) {
	case *MarkdownFilter, *SmartyPantsFilter:
		return true
	}
	return false
}

// MarkdownFilter renders GitHub-flavoured Markdown to HTML. Raw HTML passes through.
type MarkdownFilter struct {
	md goldmark.Markdown
}

// NewMarkdownFilter creates the Markdown filter.
func NewMarkdownFilter() *MarkdownFilter {
	return &MarkdownFilter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
	}
}

// Name returns "Markdown".
func (f *MarkdownFilter) Name() string { return FilterNameMarkdown }

// Filter converts Markdown to HTML.
func (f *MarkdownFilter) Filter(text string) (string, error) {
	var buf bytes.Buffer
	if err := f.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SmartyPantsFilter applies typographic punctuation (curly quotes, dashes,
// ellipses) without wrapping the text in a paragraph.
type SmartyPantsFilter struct {
	md goldmark.Markdown
}

// NewSmartyPantsFilter creates the SmartyPants filter.
func NewSmartyPantsFilter() *SmartyPantsFilter {
	return &SmartyPantsFilter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Typographer),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
	}
}

// Name returns "SmartyPants".
func (f *SmartyPantsFilter) Name() string { return FilterNameSmartyPants }

// Filter converts ASCII punctuation to typographic entities.
func (f *SmartyPantsFilter) Filter(text string) (string, error) {
	var buf bytes.Buffer
	if err := f.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") &&
		strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}
