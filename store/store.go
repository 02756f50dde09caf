// Package store persists diagrams and their version history over
// database/sql. It speaks sqlite, mysql and postgres; graph snapshots
// travel as msgpack blobs so the relational schema stays flat.
//
// The caller imports the driver it opens:
//
//	import _ "modernc.org/sqlite"
//
//	st, err := store.Open(store.SQLite, store.SQLiteDSN("shop.db"))
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/forma"
)

// Dialects understood by Open. Each matches the name its driver
// registers with database/sql.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Lookup errors, aliased from the root contract so callers can match
// either package's sentinel with errors.Is.
var (
	// ErrNotFound reports a diagram or version that does not exist.
	ErrNotFound = forma.ErrNotFound
	// ErrConflict reports a version number taken by a concurrent writer.
	ErrConflict = forma.ErrConflict
)

// Store is a SQL-backed diagram and version store.
type Store struct {
	db      *sql.DB
	dialect string
}

// Open connects to the database behind dsn. The dialect's driver must
// be registered by the caller.
func Open(dialect, dsn string) (*Store, error) {
	switch dialect {
	case MySQL, SQLite, Postgres:
	default:
		return nil, fmt.Errorf("store: unsupported dialect %q", dialect)
	}
	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dialect, err)
	}
	return OpenDB(dialect, db), nil
}

// OpenDB wraps an existing connection pool.
func OpenDB(dialect string, db *sql.DB) *Store {
	return &Store{db: db, dialect: dialect}
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the diagrams and versions tables if they do not
// exist. On sqlite the connection must have foreign keys enabled (see
// SQLiteDSN) for the declared cascade to hold outside DeleteDiagram.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range s.ddl() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) ddl() []string {
	blob, ts := "BLOB", "TIMESTAMP"
	switch s.dialect {
	case Postgres:
		blob, ts = "BYTEA", "TIMESTAMPTZ"
	case MySQL:
		blob, ts = "MEDIUMBLOB", "DATETIME"
	}
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS diagrams (
	id VARCHAR(36) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	kind VARCHAR(32) NOT NULL,
	snapshot %s NOT NULL,
	created_at %s NOT NULL,
	updated_at %s NOT NULL
)`, blob, ts, ts),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS versions (
	id VARCHAR(36) PRIMARY KEY,
	diagram_id VARCHAR(36) NOT NULL,
	version_number INTEGER NOT NULL,
	change_summary TEXT NOT NULL,
	tag VARCHAR(100) NOT NULL,
	is_major BOOLEAN NOT NULL,
	parent_version VARCHAR(36),
	created_by VARCHAR(150) NOT NULL,
	snapshot %s NOT NULL,
	created_at %s NOT NULL,
	CONSTRAINT versions_diagram_fkey FOREIGN KEY (diagram_id) REFERENCES diagrams (id) ON DELETE CASCADE,
	CONSTRAINT versions_diagram_number UNIQUE (diagram_id, version_number)
)`, blob, ts),
	}
}

// rebind rewrites ? placeholders to the dialect's format.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
