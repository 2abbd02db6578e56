package radtags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sqlTimeLayout is fixed width so text columns sort chronologically.
const sqlTimeLayout = "2006-01-02T15:04:05.000000000Z"

// sqlDialect captures what differs between the SQL backends.
type sqlDialect struct {
	name string

	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool

	// timeAsText stores timestamps as sqlTimeLayout strings
	timeAsText bool

	// migrations builds the schema for the given table prefix
	migrations func(prefix string) []sqlMigration

	// afterExplicitID runs after a row is saved with a caller-chosen id
	afterExplicitID func(ctx context.Context, tx *sql.Tx, table string) error
}

// sqlMigration represents a database migration.
type sqlMigration struct {
	Version     int
	Description string
	SQL         string
}

// sqlStore implements Store over database/sql.
type sqlStore struct {
	db           *sql.DB
	dialect      sqlDialect
	prefix       string
	queryTimeout time.Duration
	mu           sync.RWMutex
	closed       bool
}

func newSQLStore(db *sql.DB, dialect sqlDialect, prefix string, queryTimeout time.Duration) *sqlStore {
	if prefix == "" {
		prefix = SQLTablePrefix
	}
	if queryTimeout == 0 {
		queryTimeout = PostgresDefaultQueryTimeout
	}
	return &sqlStore{
		db:           db,
		dialect:      dialect,
		prefix:       prefix,
		queryTimeout: queryTimeout,
	}
}

func (s *sqlStore) authorsTable() string    { return s.prefix + "authors" }
func (s *sqlStore) pagesTable() string      { return s.prefix + "pages" }
func (s *sqlStore) migrationsTable() string { return s.prefix + "schema_migrations" }

// rebind rewrites ? placeholders for dialects with numbered parameters.
func (s *sqlStore) rebind(query string) string {
	if !s.dialect.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) encodeTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	if s.dialect.timeAsText {
		return t.UTC().Format(sqlTimeLayout)
	}
	return t.UTC()
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// sqlTime scans timestamps stored natively or as text; NULL becomes the zero time.
type sqlTime struct {
	t *time.Time
}

// Scan implements sql.Scanner.
func (st sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*st.t = time.Time{}
	case time.Time:
		*st.t = v.UTC()
	case string:
		return st.parse(v)
	case []byte:
		return st.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into time", src)
	}
	return nil
}

func (st sqlTime) parse(v string) error {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return err
	}
	*st.t = t.UTC()
	return nil
}

// begin checks the store is usable and returns a timeout-bound context.
func (s *sqlStore) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if s.closed {
		return nil, nil, NewStoreClosedError()
	}
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	return ctx, cancel, nil
}

const sqlAuthorColumns = "id, login, name, email, bio, bio_filter_id"

const sqlPageColumns = "id, parent_id, title, slug, url, status_id, virtual, created_by_id, created_at, updated_at, published_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row rowScanner) (*Author, error) {
	var (
		a        Author
		bio      sql.NullString
		filterID sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Login, &a.Name, &a.Email, &bio, &filterID); err != nil {
		return nil, err
	}
	a.Bio = bio.String
	a.BioFilterID = filterID.String
	return &a, nil
}

func scanPage(row rowScanner) (*Page, error) {
	var (
		p         Page
		parentID  sql.NullInt64
		createdBy sql.NullInt64
	)
	err := row.Scan(&p.ID, &parentID, &p.Title, &p.Slug, &p.URL, &p.StatusID, &p.Virtual, &createdBy,
		sqlTime{&p.CreatedAt}, sqlTime{&p.UpdatedAt}, sqlTime{&p.PublishedAt})
	if err != nil {
		return nil, err
	}
	p.ParentID = parentID.Int64
	p.CreatedByID = createdBy.Int64
	return &p, nil
}

// AuthorByID returns the author with the given id.
func (s *sqlStore) AuthorByID(ctx context.Context, id int64) (*Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query := s.rebind(fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", sqlAuthorColumns, s.authorsTable()))
	a, err := scanAuthor(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFoundError(LocalAuthor, strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	return a, nil
}

// FindAuthors returns authors matching the query ordered by id.
func (s *sqlStore) FindAuthors(ctx context.Context, q AuthorQuery) ([]*Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	var (
		b    strings.Builder
		args []any
	)
	fmt.Fprintf(&b, "SELECT %s FROM %s", sqlAuthorColumns, s.authorsTable())
	if len(q.Logins) > 0 {
		b.WriteString(" WHERE login IN (")
		for i, login := range q.Logins {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('?')
			args = append(args, login)
		}
		b.WriteByte(')')
	}
	b.WriteString(" ORDER BY id")
	args = s.writePagination(&b, args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, s.rebind(b.String()), args...)
	if err != nil {
		return nil, NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	defer rows.Close()

	authors := []*Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, NewStoreError(ErrMsgStoreQueryFailed, err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	return authors, nil
}

// PageByID returns the page with the given id.
func (s *sqlStore) PageByID(ctx context.Context, id int64) (*Page, error) {
	return s.pageWhere(ctx, "id", id, strconv.FormatInt(id, 10))
}

// PageByURL returns the page at the given URL.
func (s *sqlStore) PageByURL(ctx context.Context, url string) (*Page, error) {
	return s.pageWhere(ctx, "url", url, url)
}

func (s *sqlStore) pageWhere(ctx context.Context, column string, value any, key string) (*Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	query := s.rebind(fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", sqlPageColumns, s.pagesTable(), column))
	p, err := scanPage(s.db.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFoundError(LocalPage, key)
	}
	if err != nil {
		return nil, NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	return p, nil
}

// FindPages returns non-virtual pages matching the query.
func (s *sqlStore) FindPages(ctx context.Context, q PageQuery) ([]*Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	var (
		b    strings.Builder
		args = []any{false}
	)
	fmt.Fprintf(&b, "SELECT %s FROM %s WHERE virtual = ?", sqlPageColumns, s.pagesTable())
	if q.CreatedByID != 0 {
		b.WriteString(" AND created_by_id = ?")
		args = append(args, q.CreatedByID)
	}
	if q.ParentID != 0 {
		b.WriteString(" AND parent_id = ?")
		args = append(args, q.ParentID)
	}
	if !q.AllStatuses {
		b.WriteString(" AND status_id = ?")
		args = append(args, q.StatusID)
	}

	orderBy := PageFieldID
	if IsPageField(q.OrderBy) {
		orderBy = q.OrderBy
	}
	// NULL timestamps order like the zero time.
	if q.Descending {
		fmt.Fprintf(&b, " ORDER BY %s DESC NULLS LAST, id DESC", orderBy)
	} else {
		fmt.Fprintf(&b, " ORDER BY %s ASC NULLS FIRST, id ASC", orderBy)
	}
	args = s.writePagination(&b, args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, s.rebind(b.String()), args...)
	if err != nil {
		return nil, NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	defer rows.Close()

	pages := []*Page{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, NewStoreError(ErrMsgStoreQueryFailed, err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	return pages, nil
}

// writePagination appends LIMIT and OFFSET clauses. OFFSET needs a LIMIT in SQLite.
func (s *sqlStore) writePagination(b *strings.Builder, args []any, limit, offset int) []any {
	if limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, limit)
	} else if offset > 0 {
		if s.dialect.numbered {
			b.WriteString(" LIMIT ALL")
		} else {
			b.WriteString(" LIMIT -1")
		}
	}
	if offset > 0 {
		b.WriteString(" OFFSET ?")
		args = append(args, offset)
	}
	return args
}

// SaveAuthor inserts or updates an author.
func (s *sqlStore) SaveAuthor(ctx context.Context, a *Author) error {
	if a == nil || a.Login == "" {
		return NewStoreError(ErrMsgStoreInvalidRecord, nil)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	values := []any{a.Login, a.Name, a.Email, a.Bio, a.BioFilterID}
	if a.ID == 0 {
		query := s.rebind(fmt.Sprintf(
			"INSERT INTO %s (login, name, email, bio, bio_filter_id) VALUES (?, ?, ?, ?, ?) RETURNING id",
			s.authorsTable()))
		if err := s.db.QueryRowContext(ctx, query, values...).Scan(&a.ID); err != nil {
			return NewStoreError(ErrMsgStoreQueryFailed, err)
		}
		return nil
	}

	query := s.rebind(fmt.Sprintf(`
		INSERT INTO %s (id, login, name, email, bio, bio_filter_id) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			login = excluded.login, name = excluded.name, email = excluded.email,
			bio = excluded.bio, bio_filter_id = excluded.bio_filter_id`, s.authorsTable()))
	return s.execExplicitID(ctx, s.authorsTable(), query, append([]any{a.ID}, values...))
}

// SavePage inserts or updates a page. Missing timestamps are set to now.
func (s *sqlStore) SavePage(ctx context.Context, p *Page) error {
	if p == nil || p.URL == "" {
		return NewStoreError(ErrMsgStoreInvalidRecord, nil)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	values := []any{
		nullableID(p.ParentID), p.Title, p.Slug, p.URL, p.StatusID, p.Virtual, nullableID(p.CreatedByID),
		s.encodeTime(p.CreatedAt), s.encodeTime(p.UpdatedAt), s.encodeTime(p.PublishedAt),
	}
	if p.ID == 0 {
		query := s.rebind(fmt.Sprintf(`
			INSERT INTO %s (parent_id, title, slug, url, status_id, virtual, created_by_id, created_at, updated_at, published_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`, s.pagesTable()))
		if err := s.db.QueryRowContext(ctx, query, values...).Scan(&p.ID); err != nil {
			return NewStoreError(ErrMsgStoreQueryFailed, err)
		}
		return nil
	}

	query := s.rebind(fmt.Sprintf(`
		INSERT INTO %s (id, parent_id, title, slug, url, status_id, virtual, created_by_id, created_at, updated_at, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			parent_id = excluded.parent_id, title = excluded.title, slug = excluded.slug,
			url = excluded.url, status_id = excluded.status_id, virtual = excluded.virtual,
			created_by_id = excluded.created_by_id, updated_at = excluded.updated_at,
			published_at = excluded.published_at`, s.pagesTable()))
	return s.execExplicitID(ctx, s.pagesTable(), query, append([]any{p.ID}, values...))
}

func (s *sqlStore) execExplicitID(ctx context.Context, table, query string, args []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	if s.dialect.afterExplicitID != nil {
		if err := s.dialect.afterExplicitID(ctx, tx, table); err != nil {
			_ = tx.Rollback()
			return NewStoreError(ErrMsgStoreQueryFailed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	return nil
}

// Close releases database connections.
func (s *sqlStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	s.closed = true
	return s.db.Close()
}

// RunMigrations applies pending database migrations.
func (s *sqlStore) RunMigrations(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version     INTEGER PRIMARY KEY,
			description VARCHAR(255)
		)`, s.migrationsTable()))
	if err != nil {
		return NewStoreError(ErrMsgStoreMigrationFailed, err)
	}

	applied := make(map[int]bool)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT version FROM %s", s.migrationsTable()))
	if err != nil {
		return NewStoreError(ErrMsgStoreMigrationFailed, err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return NewStoreError(ErrMsgStoreMigrationFailed, err)
		}
		applied[v] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return NewStoreError(ErrMsgStoreMigrationFailed, err)
	}

	for _, m := range s.dialect.migrations(s.prefix) {
		if applied[m.Version] {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return NewStoreError(ErrMsgStoreMigrationFailed, err)
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return NewStoreError(ErrMsgStoreMigrationFailed, fmt.Errorf("migration %d failed: %w", m.Version, err))
		}
		if _, err := tx.ExecContext(ctx,
			s.rebind(fmt.Sprintf("INSERT INTO %s (version, description) VALUES (?, ?)", s.migrationsTable())),
			m.Version, m.Description); err != nil {
			_ = tx.Rollback()
			return NewStoreError(ErrMsgStoreMigrationFailed, err)
		}
		if err := tx.Commit(); err != nil {
			return NewStoreError(ErrMsgStoreMigrationFailed, err)
		}
	}
	return nil
}

// CurrentSchemaVersion returns the current schema version.
func (s *sqlStore) CurrentSchemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT MAX(version) FROM %s", s.migrationsTable())).Scan(&version)
	if err != nil {
		return 0, NewStoreError(ErrMsgStoreQueryFailed, err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
