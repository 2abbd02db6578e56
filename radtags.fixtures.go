package radtags

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Fixtures is a YAML description of authors and pages used to seed a store.
//
//	authors:
//	  - login: sean
//	    name: Sean Cribbs
//	    email: sean@example.com
//	    bio: "*Radiant* core team"
//	    bio_filter: Markdown
//	pages:
//	  - url: /
//	    title: Home
//	    created_by: sean
//	    published_at: 2008-01-02T10:00:00Z
//	  - url: /articles/
//	    parent: /
//	    title: Articles
//	    status: draft
type Fixtures struct {
	Authors []FixtureAuthor `yaml:"authors"`
	Pages   []FixturePage   `yaml:"pages"`
}

// FixtureAuthor is an author entry in a fixtures file.
type FixtureAuthor struct {
	ID        int64  `yaml:"id,omitempty"`
	Login     string `yaml:"login"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Bio       string `yaml:"bio,omitempty"`
	BioFilter string `yaml:"bio_filter,omitempty"`
}

// FixturePage is a page entry in a fixtures file. Parents are referenced by
// URL and creators by login, so entries must follow the records they name.
type FixturePage struct {
	ID          int64     `yaml:"id,omitempty"`
	URL         string    `yaml:"url"`
	Parent      string    `yaml:"parent,omitempty"`
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug,omitempty"`
	Status      string    `yaml:"status,omitempty"` // status name; default published
	Virtual     bool      `yaml:"virtual,omitempty"`
	CreatedBy   string    `yaml:"created_by,omitempty"`
	PublishedAt time.Time `yaml:"published_at,omitempty"`
}

// ParseFixtures decodes a fixtures document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, NewStoreError(ErrMsgFixturesDecodeFailed, err)
	}
	return &f, nil
}

// Load saves the fixtures into the store in document order.
func (f *Fixtures) Load(ctx context.Context, store Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	byLogin := make(map[string]int64, len(f.Authors))
	for _, fa := range f.Authors {
		a := &Author{
			ID:          fa.ID,
			Login:       fa.Login,
			Name:        fa.Name,
			Email:       fa.Email,
			Bio:         fa.Bio,
			BioFilterID: fa.BioFilter,
		}
		if err := store.SaveAuthor(ctx, a); err != nil {
			return err
		}
		byLogin[a.Login] = a.ID
	}

	byURL := make(map[string]int64, len(f.Pages))
	for _, fp := range f.Pages {
		status := StatusPublished
		if fp.Status != "" {
			st, ok := LookupStatus(fp.Status)
			if !ok {
				return NewStoreError(ErrMsgFixturesDecodeFailed, NewTagError(ErrMsgInvalidStatusAttr, fp.URL, AttrStatus, fp.Status))
			}
			status = st
		}

		p := &Page{
			ID:          fp.ID,
			URL:         fp.URL,
			Title:       fp.Title,
			Slug:        fp.Slug,
			StatusID:    status.ID,
			Virtual:     fp.Virtual,
			PublishedAt: fp.PublishedAt,
		}

		if fp.Parent != "" {
			id, ok := byURL[fp.Parent]
			if !ok {
				parent, err := store.PageByURL(ctx, fp.Parent)
				if err != nil {
					return err
				}
				id = parent.ID
			}
			p.ParentID = id
		}

		if fp.CreatedBy != "" {
			id, ok := byLogin[fp.CreatedBy]
			if !ok {
				authors, err := store.FindAuthors(ctx, AuthorQuery{Logins: []string{fp.CreatedBy}})
				if err != nil {
					return err
				}
				if len(authors) == 0 {
					return NewNotFoundError(LocalAuthor, fp.CreatedBy)
				}
				id = authors[0].ID
			}
			p.CreatedByID = id
		}

		if err := store.SavePage(ctx, p); err != nil {
			return err
		}
		byURL[p.URL] = p.ID
	}

	logger.Info(LogMsgFixturesLoaded,
		zap.Int(LogFieldCount, len(f.Authors)+len(f.Pages)))
	return nil
}
