package radtags

import (
	"context"
	"fmt"
	"time"
)

// SQLiteConfig configures the SQLite store driver.
type SQLiteConfig struct {
	// DataSource is the SQLite file name or URI, e.g. "file:site.db" or ":memory:".
	DataSource string

	// TablePrefix allows customizing the table name prefix.
	// Default: "radtags_"
	TablePrefix string

	// QueryTimeout is the default timeout for queries.
	// Default: 30 seconds
	QueryTimeout time.Duration
}

// SQLiteStore implements Store using SQLite. Migrations always run on open.
type SQLiteStore struct {
	*sqlStore
	config SQLiteConfig
}

// SQLiteStoreDriver is the driver for creating SQLiteStore instances.
type SQLiteStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverSQLite, &SQLiteStoreDriver{})
}

// Open creates a new SQLiteStore.
func (d *SQLiteStoreDriver) Open(connectionString string) (Store, error) {
	return NewSQLiteStore(SQLiteConfig{DataSource: connectionString})
}

// NewSQLiteStore opens the database and applies migrations.
func NewSQLiteStore(config SQLiteConfig) (*SQLiteStore, error) {
	if config.DataSource == "" {
		return nil, NewStoreError(ErrMsgStoreEmptyDSN, nil)
	}
	if config.TablePrefix == "" {
		config.TablePrefix = SQLTablePrefix
	}
	if config.QueryTimeout == 0 {
		config.QueryTimeout = PostgresDefaultQueryTimeout
	}

	db, err := openSQLite(config.DataSource)
	if err != nil {
		return nil, NewStoreError(ErrMsgStoreConnectFailed, err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), config.QueryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, NewStoreError(ErrMsgStoreConnectFailed, err)
	}

	store := &SQLiteStore{
		sqlStore: newSQLStore(db, sqliteDialect, config.TablePrefix, config.QueryTimeout),
		config:   config,
	}
	if err := store.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

var sqliteDialect = sqlDialect{
	name:       StoreDriverSQLite,
	timeAsText: true,
	migrations: sqliteMigrations,
}

func sqliteMigrations(prefix string) []sqlMigration {
	authors := prefix + "authors"
	pages := prefix + "pages"
	return []sqlMigration{
		{
			Version:     1,
			Description: "Initial schema with authors and pages tables",
			SQL: fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					id            INTEGER PRIMARY KEY,
					login         TEXT NOT NULL UNIQUE,
					name          TEXT NOT NULL DEFAULT '',
					email         TEXT NOT NULL DEFAULT '',
					bio           TEXT,
					bio_filter_id TEXT
				);

				CREATE TABLE IF NOT EXISTS %s (
					id            INTEGER PRIMARY KEY,
					parent_id     INTEGER REFERENCES %s(id) ON DELETE CASCADE,
					title         TEXT NOT NULL DEFAULT '',
					slug          TEXT NOT NULL DEFAULT '',
					url           TEXT NOT NULL UNIQUE,
					status_id     INTEGER NOT NULL DEFAULT 1,
					virtual       INTEGER NOT NULL DEFAULT 0,
					created_by_id INTEGER REFERENCES %s(id) ON DELETE SET NULL,
					created_at    TEXT,
					updated_at    TEXT,
					published_at  TEXT
				);

				CREATE INDEX IF NOT EXISTS idx_%s_parent_id ON %s(parent_id);
				CREATE INDEX IF NOT EXISTS idx_%s_created_by_id ON %s(created_by_id);
				CREATE INDEX IF NOT EXISTS idx_%s_status_id ON %s(status_id);
			`,
				authors,
				pages, pages, authors,
				pages, pages,
				pages, pages,
				pages, pages,
			),
		},
	}
}
