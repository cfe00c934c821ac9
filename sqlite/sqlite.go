// Package sqlite provides the SQLite-backed page store, including the
// FTS5 search index.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB is one crawl target's database file.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns an unopened DB for the given file path, or ":memory:"
// for an ephemeral one.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects, applies the connection pragmas, and ensures the schema
// exists.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time is all SQLite allows; a single pooled
	// connection keeps the write path serialized on our side too.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// busy_timeout makes lock contention wait instead of surfacing
	// "database is locked". WAL only applies to file-backed databases.
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the underlying connection. Safe on an unopened DB.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext runs a single-row query.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext runs a multi-row query.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext runs a statement without a result set.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a write transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// Stats reports connection pool statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist. The
// pages_fts index is an external-content FTS5 table over pages, kept in
// sync by triggers so a page row and its index entry change in the same
// transaction.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			path TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			section TEXT NOT NULL DEFAULT '',
			subsection TEXT NOT NULL DEFAULT '',
			plain_text TEXT NOT NULL DEFAULT '',
			markdown TEXT NOT NULL DEFAULT '',
			raw_content_html TEXT NOT NULL DEFAULT '',
			code_blocks TEXT NOT NULL DEFAULT '[]',
			content_fingerprint TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL,
			last_fetched_at TEXT NOT NULL,
			last_checked_at TEXT NOT NULL,
			searchable_text TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_pages_section ON pages(section);

		CREATE VIRTUAL TABLE IF NOT EXISTS pages_fts USING fts5(
			title,
			searchable_text,
			section,
			subsection,
			content='pages',
			content_rowid='rowid'
		);

		CREATE TRIGGER IF NOT EXISTS pages_ai AFTER INSERT ON pages BEGIN
			INSERT INTO pages_fts(rowid, title, searchable_text, section, subsection)
			VALUES (new.rowid, new.title, new.searchable_text, new.section, new.subsection);
		END;

		CREATE TRIGGER IF NOT EXISTS pages_ad AFTER DELETE ON pages BEGIN
			INSERT INTO pages_fts(pages_fts, rowid, title, searchable_text, section, subsection)
			VALUES ('delete', old.rowid, old.title, old.searchable_text, old.section, old.subsection);
		END;

		CREATE TRIGGER IF NOT EXISTS pages_au AFTER UPDATE ON pages BEGIN
			INSERT INTO pages_fts(pages_fts, rowid, title, searchable_text, section, subsection)
			VALUES ('delete', old.rowid, old.title, old.searchable_text, old.section, old.subsection);
			INSERT INTO pages_fts(rowid, title, searchable_text, section, subsection)
			VALUES (new.rowid, new.title, new.searchable_text, new.section, new.subsection);
		END;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.db.Exec(schema)
	return err
}
