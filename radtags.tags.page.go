package radtags

import (
	"context"
	"time"
)

// PageTags is the minimal set of page tags the other libraries render:
// title, url, slug and published_at (format="Jan 2, 2006").
type PageTags struct{}

// Name returns "page".
func (PageTags) Name() string { return LocalPage }

// Register defines the page tags on the engine.
func (l PageTags) Register(e *Engine) error {
	if err := e.Define(TagNameTitle, pageField(func(p *Page) string { return p.Title })); err != nil {
		return err
	}
	if err := e.Define(TagNameURL, pageField(func(p *Page) string { return p.URL })); err != nil {
		return err
	}
	if err := e.Define(TagNameSlug, pageField(func(p *Page) string { return p.Slug })); err != nil {
		return err
	}
	return e.Define(TagNamePublishedAt, l.publishedAt)
}

func pageField(get func(p *Page) string) TagFunc {
	return func(ctx context.Context, tag *Tag) (string, error) {
		if p := tag.Locals().Page(); p != nil {
			return get(p), nil
		}
		return "", nil
	}
}

func (PageTags) publishedAt(ctx context.Context, tag *Tag) (string, error) {
	p := tag.Locals().Page()
	if p == nil || p.PublishedAt.IsZero() {
		return "", nil
	}
	return p.PublishedAt.Format(tag.AttrDefault(AttrFormat, time.RFC3339)), nil
}
