package radtags

import (
	"context"
	"net/url"
	"strings"
)

// BlogTags is the tag library emitting social bookmarking links for the
// current page:
//
//	<r:blogtags:delicious />
//	<r:blogtags><r:digg /> <r:reddit /></r:blogtags>
type BlogTags struct {
	// ImagePath is the directory holding the service icons.
	// Default: "/images/blogtags/"
	ImagePath string
}

// Name returns "blogtags".
func (BlogTags) Name() string { return TagNameBlogTags }

// bookmarkService describes one bookmarking site.
type bookmarkService struct {
	tag      string
	name     string
	urlParam string // submit URL up to and including the page URL parameter
	titleKey string // title parameter name; empty when the service takes none
}

var bookmarkServices = []bookmarkService{
	{TagNameTechnorati, "technorati", "http://technorati.com/cosmos/search.html?url=", ""},
	{TagNameDelicious, "delicious", "http://del.icio.us/post?url=", "title"},
	{TagNameDigg, "digg", "http://digg.com/submit?phase=2&url=", ""},
	{TagNameBlinklist, "blinklist", "http://blinklist.com/index.php?Action=Blink/addblink.php&url=", ""},
	{TagNameFurl, "furl", "http://furl.net/storeIt.jsp?u=", "t"},
	{TagNameReddit, "reddit", "http://reddit.com/submit?url=", "title"},
}

// Register defines the blog tags on the engine.
func (l BlogTags) Register(e *Engine) error {
	if err := e.Define(TagNameBlogTags, expandTag); err != nil {
		return err
	}
	imagePath := l.ImagePath
	if imagePath == "" {
		imagePath = DefaultBlogTagsImagePath
	}
	if !strings.HasSuffix(imagePath, "/") {
		imagePath += "/"
	}
	for _, svc := range bookmarkServices {
		if err := e.Define(svc.tag, svc.handler(imagePath)); err != nil {
			return err
		}
	}
	return nil
}

func (svc bookmarkService) handler(imagePath string) TagFunc {
	return func(ctx context.Context, tag *Tag) (string, error) {
		uri, err := pageURI(ctx, tag)
		if err != nil {
			return "", err
		}

		var b strings.Builder
		b.WriteString(`<a href="`)
		b.WriteString(svc.urlParam)
		b.WriteString(uri)
		if svc.titleKey != "" {
			title, err := tag.Render(ctx, TagNameTitle, nil)
			if err != nil {
				return "", err
			}
			b.WriteString("&")
			b.WriteString(svc.titleKey)
			b.WriteString("=")
			b.WriteString(url.QueryEscape(title))
		}
		b.WriteString(`"><img src="`)
		b.WriteString(imagePath)
		b.WriteString(svc.name)
		b.WriteString(BlogTagsImageExt)
		b.WriteString(`" title="add to `)
		b.WriteString(svc.name)
		b.WriteString(`"/></a>`)
		return b.String(), nil
	}
}

// pageURI returns the absolute URL of the current page. Each path segment is
// escaped so that '&', '=', '?' and '#' cannot break the service query.
func pageURI(ctx context.Context, tag *Tag) (string, error) {
	pagePath, err := tag.Render(ctx, TagNameURL, nil)
	if err != nil {
		return "", err
	}
	req := tag.Locals().Request()
	scheme := req.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	if !strings.HasPrefix(pagePath, "/") {
		pagePath = "/" + pagePath
	}
	segments := strings.Split(pagePath, "/")
	for i, seg := range segments {
		segments[i] = strings.ReplaceAll(url.QueryEscape(seg), "+", "%20")
	}
	u := url.URL{Scheme: scheme, Host: req.Host, Path: pagePath, RawPath: strings.Join(segments, "/")}
	return u.String(), nil
}
