package radtags

import (
	"context"
	"sort"
	"sync"
)

// AuthorQuery selects authors for authors:each.
type AuthorQuery struct {
	// Logins restricts results to these logins (empty matches all).
	Logins []string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip.
	Offset int
}

// PageQuery selects pages for pages:each and pages:count.
// Virtual pages are always excluded.
type PageQuery struct {
	// CreatedByID restricts results to pages created by this author (0 = any).
	CreatedByID int64

	// ParentID restricts results to children of this page (0 = any).
	ParentID int64

	// StatusID restricts results to one status. Ignored when AllStatuses is set.
	StatusID int

	// AllStatuses disables status filtering.
	AllStatuses bool

	// OrderBy is a page field name (see IsPageField). Empty means id.
	OrderBy string

	// Descending reverses the sort order.
	Descending bool

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip.
	Offset int
}

// Store is the persistence layer the tags read authors and pages from.
// Implementations must be safe for concurrent use.
type Store interface {
	// AuthorByID returns the author with the given id.
	// Returns an ErrNotFound error if none exists.
	AuthorByID(ctx context.Context, id int64) (*Author, error)

	// FindAuthors returns authors matching the query ordered by id.
	FindAuthors(ctx context.Context, q AuthorQuery) ([]*Author, error)

	// PageByID returns the page with the given id.
	// Returns an ErrNotFound error if none exists.
	PageByID(ctx context.Context, id int64) (*Page, error)

	// PageByURL returns the page at the given URL.
	// Returns an ErrNotFound error if none exists.
	PageByURL(ctx context.Context, url string) (*Page, error)

	// FindPages returns non-virtual pages matching the query.
	FindPages(ctx context.Context, q PageQuery) ([]*Page, error)

	// SaveAuthor inserts the author, or updates it when ID is set.
	// On insert the assigned ID is written back.
	SaveAuthor(ctx context.Context, a *Author) error

	// SavePage inserts the page, or updates it when ID is set.
	// On insert the assigned ID is written back.
	SavePage(ctx context.Context, p *Page) error

	// Close releases any resources held by the store.
	Close() error
}

// StoreDriver is a factory for creating store instances.
// Drivers register themselves during init().
type StoreDriver interface {
	// Open creates a new store with the given connection string.
	Open(connectionString string) (Store, error)
}

var (
	storeDriversMu sync.RWMutex
	storeDrivers   = make(map[string]StoreDriver)
)

// RegisterStoreDriver registers a store driver by name.
// Panics if the driver is nil or the name is already taken.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgStoreNilDriver)
	}
	if _, exists := storeDrivers[name]; exists {
		panic(ErrMsgStoreDriverExists + ": " + name)
	}
	storeDrivers[name] = driver
}

// OpenStore opens a store using the named driver.
//
//	store, err := radtags.OpenStore("memory", "")
//	store, err := radtags.OpenStore("sqlite", "file:site.db")
//	store, err := radtags.OpenStore("postgres", "postgres://localhost/cms?sslmode=disable")
func OpenStore(driverName, connectionString string) (Store, error) {
	storeDriversMu.RLock()
	driver, ok := storeDrivers[driverName]
	storeDriversMu.RUnlock()

	if !ok {
		return nil, NewStoreDriverNotFoundError(driverName)
	}
	return driver.Open(connectionString)
}

// ListStoreDrivers returns the names of all registered store drivers in sorted order.
func ListStoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// paginate applies offset and limit to n results, returning the slice bounds.
func paginate(n, limit, offset int) (int, int) {
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
