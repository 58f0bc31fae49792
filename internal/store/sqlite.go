package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.catalogPath())
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// WAL lets the TUI read while a CLI command in another terminal writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			location TEXT NOT NULL,
			price INTEGER NOT NULL,
			rating REAL NOT NULL DEFAULT 0,
			seller TEXT NOT NULL DEFAULT '',
			search_text TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_location ON listings(location);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price);`,
		`INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', '` + schemaVersion + `');`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
