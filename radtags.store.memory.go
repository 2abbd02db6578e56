package radtags

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of Store.
// It is primarily intended for testing and fixtures.
// All data is lost when the process terminates.
type MemoryStore struct {
	mu           sync.RWMutex
	authors      map[int64]*Author
	pages        map[int64]*Page
	nextAuthorID int64
	nextPageID   int64
	closed       bool
}

// MemoryStoreDriver is the driver for creating MemoryStore instances.
type MemoryStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverMemory, &MemoryStoreDriver{})
}

// Open creates a new MemoryStore. The connection string is ignored.
func (d *MemoryStoreDriver) Open(connectionString string) (Store, error) {
	return NewMemoryStore(), nil
}

// NewMemoryStore creates a new empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		authors: make(map[int64]*Author),
		pages:   make(map[int64]*Page),
	}
}

// AuthorByID returns the author with the given id.
func (s *MemoryStore) AuthorByID(ctx context.Context, id int64) (*Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	a, ok := s.authors[id]
	if !ok {
		return nil, NewNotFoundError(LocalAuthor, strconv.FormatInt(id, 10))
	}
	return copyAuthor(a), nil
}

// FindAuthors returns authors matching the query ordered by id.
func (s *MemoryStore) FindAuthors(ctx context.Context, q AuthorQuery) ([]*Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	logins := make(map[string]struct{}, len(q.Logins))
	for _, l := range q.Logins {
		logins[l] = struct{}{}
	}

	var matched []*Author
	for _, a := range s.authors {
		if len(logins) > 0 {
			if _, ok := logins[a.Login]; !ok {
				continue
			}
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start, end := paginate(len(matched), q.Limit, q.Offset)
	result := make([]*Author, 0, end-start)
	for _, a := range matched[start:end] {
		result = append(result, copyAuthor(a))
	}
	return result, nil
}

// PageByID returns the page with the given id.
func (s *MemoryStore) PageByID(ctx context.Context, id int64) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	p, ok := s.pages[id]
	if !ok {
		return nil, NewNotFoundError(LocalPage, strconv.FormatInt(id, 10))
	}
	return copyPage(p), nil
}

// PageByURL returns the page at the given URL.
func (s *MemoryStore) PageByURL(ctx context.Context, url string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	for _, p := range s.pages {
		if p.URL == url {
			return copyPage(p), nil
		}
	}
	return nil, NewNotFoundError(LocalPage, url)
}

// FindPages returns non-virtual pages matching the query.
func (s *MemoryStore) FindPages(ctx context.Context, q PageQuery) ([]*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	var matched []*Page
	for _, p := range s.pages {
		if p.Virtual {
			continue
		}
		if q.CreatedByID != 0 && p.CreatedByID != q.CreatedByID {
			continue
		}
		if q.ParentID != 0 && p.ParentID != q.ParentID {
			continue
		}
		if !q.AllStatuses && p.StatusID != q.StatusID {
			continue
		}
		matched = append(matched, p)
	}

	less := pageLess(q.OrderBy)
	sort.SliceStable(matched, func(i, j int) bool {
		if q.Descending {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	start, end := paginate(len(matched), q.Limit, q.Offset)
	result := make([]*Page, 0, end-start)
	for _, p := range matched[start:end] {
		result = append(result, copyPage(p))
	}
	return result, nil
}

// SaveAuthor inserts or updates an author.
func (s *MemoryStore) SaveAuthor(ctx context.Context, a *Author) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a == nil || a.Login == "" {
		return NewStoreError(ErrMsgStoreInvalidRecord, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	for id, existing := range s.authors {
		if existing.Login == a.Login && id != a.ID {
			return NewStoreError(ErrMsgStoreDuplicateLogin, nil)
		}
	}

	if a.ID == 0 {
		s.nextAuthorID++
		a.ID = s.nextAuthorID
	} else if a.ID > s.nextAuthorID {
		s.nextAuthorID = a.ID
	}
	s.authors[a.ID] = copyAuthor(a)
	return nil
}

// SavePage inserts or updates a page. Missing timestamps are set to now.
func (s *MemoryStore) SavePage(ctx context.Context, p *Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil || p.URL == "" {
		return NewStoreError(ErrMsgStoreInvalidRecord, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	for id, existing := range s.pages {
		if existing.URL == p.URL && id != p.ID {
			return NewStoreError(ErrMsgStoreDuplicateURL, nil)
		}
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if p.ID == 0 {
		s.nextPageID++
		p.ID = s.nextPageID
	} else if p.ID > s.nextPageID {
		s.nextPageID = p.ID
	}
	s.pages[p.ID] = copyPage(p)
	return nil
}

// Close marks the store closed. Subsequent calls fail.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	s.closed = true
	return nil
}

// pageLess returns the ordering for a page field; ties break on id.
func pageLess(field string) func(a, b *Page) bool {
	var cmp func(a, b *Page) int
	switch field {
	case PageFieldParentID:
		cmp = func(a, b *Page) int { return compareInt64(a.ParentID, b.ParentID) }
	case PageFieldTitle:
		cmp = func(a, b *Page) int { return strings.Compare(a.Title, b.Title) }
	case PageFieldSlug:
		cmp = func(a, b *Page) int { return strings.Compare(a.Slug, b.Slug) }
	case PageFieldURL:
		cmp = func(a, b *Page) int { return strings.Compare(a.URL, b.URL) }
	case PageFieldStatusID:
		cmp = func(a, b *Page) int { return compareInt64(int64(a.StatusID), int64(b.StatusID)) }
	case PageFieldVirtual:
		cmp = func(a, b *Page) int { return compareBool(a.Virtual, b.Virtual) }
	case PageFieldCreatedByID:
		cmp = func(a, b *Page) int { return compareInt64(a.CreatedByID, b.CreatedByID) }
	case PageFieldCreatedAt:
		cmp = func(a, b *Page) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case PageFieldUpdatedAt:
		cmp = func(a, b *Page) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case PageFieldPublishedAt:
		cmp = func(a, b *Page) int { return a.PublishedAt.Compare(b.PublishedAt) }
	default:
		cmp = func(a, b *Page) int { return 0 }
	}
	return func(a, b *Page) bool {
		if c := cmp(a, b); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
