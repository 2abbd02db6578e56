package radtags

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// AuthorTags is the tag library exposing page authors:
//
//	<r:author />                        name of the current page's author
//	<r:author><r:email /></r:author>    scope to that author
//	<r:authors:each login="sean, john"><r:name /></r:authors:each>
//	<r:pages:each by="title" order="desc"><r:title /></r:pages:each>
//	<r:pages:count status="all" />
type AuthorTags struct{}

// Name returns "author".
func (AuthorTags) Name() string { return TagNameAuthor }

// Register defines the author tags on the engine.
func (l AuthorTags) Register(e *Engine) error {
	defs := []struct {
		name string
		fn   TagFunc
	}{
		{TagNameAuthor, l.author},
		{TagNameAuthorName, l.name},
		{TagNameAuthorsEachName, l.name},
		{TagNameAuthorEmail, l.email},
		{TagNameAuthorsEachEmail, l.email},
		{TagNameAuthorBio, l.bio},
		{TagNameAuthorsEachBio, l.bio},
		{TagNameAuthorGravatarURL, l.gravatarURL},
		{TagNameAuthorsEachGravatar, l.gravatarURL},
		{TagNameAuthors, expandTag},
		{TagNameAuthorsEach, l.authorsEach},
		{TagNamePages, l.pages},
		{TagNamePagesCount, l.pagesCount},
		{TagNamePagesEach, l.pagesEach},
	}
	for _, d := range defs {
		if err := e.Define(d.name, d.fn); err != nil {
			return err
		}
	}
	return nil
}

// expandTag renders the body; used by tags that only open a namespace.
func expandTag(ctx context.Context, tag *Tag) (string, error) {
	return tag.Expand(ctx)
}

// currentAuthor returns the author in scope, falling back to the creator of
// the current page. A resolved creator is stored in the tag's locals.
func currentAuthor(ctx context.Context, tag *Tag) (*Author, error) {
	locals := tag.Locals()
	if a := locals.Author(); a != nil {
		return a, nil
	}

	page := locals.Page()
	if page == nil || page.CreatedByID == 0 {
		tag.Engine().Logger().Debug(LogMsgAuthorMissing, zap.String(LogFieldTag, tag.Name()))
		return nil, nil
	}

	a, err := tag.Engine().Store().AuthorByID(ctx, page.CreatedByID)
	if IsNotFound(err) {
		tag.Engine().Logger().Debug(LogMsgAuthorMissing, zap.String(LogFieldTag, tag.Name()))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tag.Engine().Logger().Debug(LogMsgAuthorResolved,
		zap.String(LogFieldPage, page.URL), zap.String(LogFieldAuthor, a.Login))
	locals.SetAuthor(a)
	return a, nil
}

func (AuthorTags) author(ctx context.Context, tag *Tag) (string, error) {
	a, err := currentAuthor(ctx, tag)
	if err != nil || a == nil {
		return "", err
	}
	if tag.Double() {
		return tag.Expand(ctx)
	}
	return a.Name, nil
}

func (AuthorTags) name(ctx context.Context, tag *Tag) (string, error) {
	if a := tag.Locals().Author(); a != nil {
		return a.Name, nil
	}
	return "", nil
}

func (AuthorTags) email(ctx context.Context, tag *Tag) (string, error) {
	if a := tag.Locals().Author(); a != nil {
		return a.Email, nil
	}
	return "", nil
}

func (AuthorTags) bio(ctx context.Context, tag *Tag) (string, error) {
	a := tag.Locals().Author()
	if a == nil {
		return "", nil
	}
	return tag.Engine().Filters().Apply(a.BioFilterID, a.Bio)
}

func (AuthorTags) gravatarURL(ctx context.Context, tag *Tag) (string, error) {
	a := tag.Locals().Author()
	if a == nil {
		return "", nil
	}
	return GravatarURL(a.Email, GravatarOptions{
		Size:    tag.AttrDefault(AttrSize, ""),
		Format:  tag.AttrDefault(AttrFormat, ""),
		Rating:  tag.AttrDefault(AttrRating, ""),
		Default: tag.AttrDefault(AttrDefault, ""),
		Secure:  tag.AttrDefault(AttrSecure, "") == "true",
	}), nil
}

// GravatarOptions are the optional parts of a gravatar URL.
type GravatarOptions struct {
	Size    string // s=
	Format  string // file extension, lowercased
	Rating  string // r=, lowercased
	Default string // d=, a keyword or image URL
	Secure  bool   // use the https host
}

// GravatarURL returns the avatar URL for an email address. The address is
// trimmed and lowercased before hashing.
func GravatarURL(email string, opts GravatarOptions) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))

	var b strings.Builder
	if opts.Secure {
		b.WriteString(GravatarSecureBaseURL)
	} else {
		b.WriteString(GravatarBaseURL)
	}
	b.WriteString(hex.EncodeToString(sum[:]))
	if opts.Format != "" {
		b.WriteByte('.')
		b.WriteString(strings.ToLower(opts.Format))
	}

	var params []string
	if opts.Size != "" {
		params = append(params, GravatarParamSize+"="+url.QueryEscape(opts.Size))
	}
	if opts.Default != "" {
		params = append(params, GravatarParamDefault+"="+url.QueryEscape(opts.Default))
	}
	if opts.Rating != "" {
		params = append(params, GravatarParamRating+"="+url.QueryEscape(strings.ToLower(opts.Rating)))
	}
	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}

func (AuthorTags) authorsEach(ctx context.Context, tag *Tag) (string, error) {
	limit, offset, none, err := standardOptions(tag)
	if err != nil || none {
		return "", err
	}

	q := AuthorQuery{Limit: limit, Offset: offset}
	if raw, ok := tag.Attr(AttrLogin); ok {
		for _, login := range strings.Split(strings.ReplaceAll(raw, " ", ""), LoginSeparator) {
			if login != "" {
				q.Logins = append(q.Logins, login)
			}
		}
		// A login list that names nobody matches nobody.
		if len(q.Logins) == 0 {
			return "", nil
		}
	}

	authors, err := tag.Engine().Store().FindAuthors(ctx, q)
	if err != nil {
		return "", err
	}

	locals := tag.Locals()
	locals.SetAuthors(authors)

	var b strings.Builder
	for _, a := range authors {
		locals.SetAuthor(a)
		out, err := tag.Expand(ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func (AuthorTags) pages(ctx context.Context, tag *Tag) (string, error) {
	a, err := currentAuthor(ctx, tag)
	if err != nil || a == nil {
		return "", err
	}
	tag.Locals().SetPages(PageQuery{CreatedByID: a.ID})
	return tag.Expand(ctx)
}

func (AuthorTags) pagesCount(ctx context.Context, tag *Tag) (string, error) {
	q, none, err := childrenFindOptions(tag)
	if err != nil {
		return "", err
	}
	base, ok := tag.Locals().Pages()
	if !ok {
		return "", nil
	}
	if none {
		return "0", nil
	}

	pages, err := tag.Engine().Store().FindPages(ctx, q.withBase(base))
	if err != nil {
		return "", err
	}
	return strconv.Itoa(len(pages)), nil
}

func (AuthorTags) pagesEach(ctx context.Context, tag *Tag) (string, error) {
	q, none, err := childrenFindOptions(tag)
	if err != nil || none {
		return "", err
	}
	locals := tag.Locals()

	if target, ok := tag.Attr(AttrURL); ok {
		base := ""
		if p := locals.Page(); p != nil {
			base = p.URL
		}
		parent, err := findPageByURL(ctx, tag.Engine().Store(), absolutePathFor(base, target))
		if IsNotFound(err) {
			tag.Engine().Logger().Debug(LogMsgPageNotFound, zap.String(LogFieldURL, target))
			return "", nil
		}
		if err != nil {
			return "", err
		}
		q = q.withBase(PageQuery{ParentID: parent.ID})
	} else {
		base, ok := locals.Pages()
		if !ok {
			return "", nil
		}
		q = q.withBase(base)
	}

	pages, err := tag.Engine().Store().FindPages(ctx, q)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, p := range pages {
		locals.SetPage(p)
		out, err := tag.Expand(ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// absolutePathFor resolves target against the base page URL unless it is absolute.
func absolutePathFor(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return target
	}
	return path.Join("/", base, target)
}

// findPageByURL looks a page up with and without the trailing slash.
func findPageByURL(ctx context.Context, store Store, pageURL string) (*Page, error) {
	p, err := store.PageByURL(ctx, pageURL)
	if !IsNotFound(err) {
		return p, err
	}

	alt := pageURL + "/"
	if strings.HasSuffix(pageURL, "/") {
		if pageURL == "/" {
			return nil, err
		}
		alt = strings.TrimSuffix(pageURL, "/")
	}
	return store.PageByURL(ctx, alt)
}
