package radtags

import (
	"strings"
	"time"
)

// Author is a CMS user who creates pages.
type Author struct {
	ID          int64  `json:"id" yaml:"id"`
	Login       string `json:"login" yaml:"login"`
	Name        string `json:"name" yaml:"name"`
	Email       string `json:"email" yaml:"email"`
	Bio         string `json:"bio,omitempty" yaml:"bio,omitempty"`
	BioFilterID string `json:"bio_filter_id,omitempty" yaml:"bio_filter_id,omitempty"`
}

// Page is a node in the site tree.
type Page struct {
	ID          int64     `json:"id" yaml:"id"`
	ParentID    int64     `json:"parent_id,omitempty" yaml:"parent_id,omitempty"` // 0 for the root page
	Title       string    `json:"title" yaml:"title"`
	Slug        string    `json:"slug" yaml:"slug"`
	URL         string    `json:"url" yaml:"url"`
	StatusID    int       `json:"status_id" yaml:"status_id"`
	Virtual     bool      `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	CreatedByID int64     `json:"created_by_id,omitempty" yaml:"created_by_id,omitempty"` // 0 when unknown
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
	PublishedAt time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"` // zero while unpublished
}

// Status is a page publication status.
type Status struct {
	ID   int
	Name string
}

// Known page statuses.
var (
	StatusDraft     = Status{ID: 1, Name: "Draft"}
	StatusReviewed  = Status{ID: 50, Name: "Reviewed"}
	StatusPublished = Status{ID: 100, Name: "Published"}
	StatusHidden    = Status{ID: 101, Name: "Hidden"}
)

var allStatuses = []Status{StatusDraft, StatusReviewed, StatusPublished, StatusHidden}

// LookupStatus finds a status by name, ignoring case.
func LookupStatus(name string) (Status, bool) {
	for _, s := range allStatuses {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Status{}, false
}

// Statuses returns all known statuses ordered by id.
func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Page fields usable as a sort key in the `by' attribute.
const (
	PageFieldID          = "id"
	PageFieldParentID    = "parent_id"
	PageFieldTitle       = "title"
	PageFieldSlug        = "slug"
	PageFieldURL         = "url"
	PageFieldStatusID    = "status_id"
	PageFieldVirtual     = "virtual"
	PageFieldCreatedByID = "created_by_id"
	PageFieldCreatedAt   = "created_at"
	PageFieldUpdatedAt   = "updated_at"
	PageFieldPublishedAt = "published_at"
)

var pageFields = map[string]struct{}{
	PageFieldID:          {},
	PageFieldParentID:    {},
	PageFieldTitle:       {},
	PageFieldSlug:        {},
	PageFieldURL:         {},
	PageFieldStatusID:    {},
	PageFieldVirtual:     {},
	PageFieldCreatedByID: {},
	PageFieldCreatedAt:   {},
	PageFieldUpdatedAt:   {},
	PageFieldPublishedAt: {},
}

// IsPageField reports whether name is a sortable page field.
func IsPageField(name string) bool {
	_, ok := pageFields[name]
	return ok
}

func copyAuthor(a *Author) *Author {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func copyPage(p *Page) *Page {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
