// Package history keeps a SQLite journal of every PATH value envpath wrote,
// numbered per scope, so earlier values can be listed and restored.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"

	"github.com/VoxDroid/envpath/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time; a second process waits instead of failing
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	if err := ApplyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

// OpenDefault opens the journal in the data directory.
func OpenDefault() (*Journal, error) {
	p, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	return Open(p)
}

// ApplyMigrations applies the embedded schema and adds columns introduced
// after the first release.
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return ensureVersionColumns(db)
}

func ensureVersionColumns(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(path_versions)")
	if err != nil {
		return err
	}
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			_ = rows.Close()
			return err
		}
		cols[name] = true
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if !cols["elevated"] {
		if _, err := db.Exec("ALTER TABLE path_versions ADD COLUMN elevated INTEGER NOT NULL DEFAULT 0"); err != nil {
			return err
		}
	}
	return nil
}
