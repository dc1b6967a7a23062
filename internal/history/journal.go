package history

import (
	"database/sql"
	"fmt"

	"github.com/VoxDroid/envpath/internal/envstore"
)

// Version is one recorded write of a scope's PATH.
type Version struct {
	ID        int64
	Scope     string
	Version   int
	CreatedAt string
	Operation string
	Entry     sql.NullString
	Before    string
	After     string
	Elevated  bool
}

// Journal stores Versions. It implements envstore.Journal.
type Journal struct {
	db       *sql.DB
	elevated bool
}

// SetElevated marks subsequent records as written by an elevated process.
func (j *Journal) SetElevated(v bool) { j.elevated = v }

// Close closes the database.
func (j *Journal) Close() error { return j.db.Close() }

// Record stores c as the next version of its scope.
func (j *Journal) Record(c envstore.Change) error {
	trx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()
	scope := c.Scope.Key()
	var maxVersion sql.NullInt64
	row := trx.QueryRow("SELECT COALESCE(MAX(version), 0) FROM path_versions WHERE scope = ?", scope)
	if err := row.Scan(&maxVersion); err != nil {
		return err
	}
	var entry interface{}
	if c.Entry != "" {
		entry = c.Entry
	}
	_, err = trx.Exec(`INSERT INTO path_versions
		(scope, version, created_at, operation, entry, before_value, after_value, elevated)
		VALUES (?, ?, datetime('now'), ?, ?, ?, ?, ?)`,
		scope, int(maxVersion.Int64)+1, c.Op, entry, c.Before, c.After, j.elevated)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return trx.Commit()
}

const versionColumns = `id, scope, version, created_at, operation, entry, before_value, after_value, elevated`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVersion(s scanner) (Version, error) {
	var v Version
	err := s.Scan(&v.ID, &v.Scope, &v.Version, &v.CreatedAt, &v.Operation, &v.Entry, &v.Before, &v.After, &v.Elevated)
	return v, err
}

// List returns the versions of scope, newest first.
func (j *Journal) List(scope envstore.Scope) ([]Version, error) {
	rows, err := j.db.Query(`SELECT `+versionColumns+` FROM path_versions WHERE scope = ? ORDER BY version DESC`, scope.Key())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Get returns version n of scope, or nil when it does not exist.
func (j *Journal) Get(scope envstore.Scope, n int) (*Version, error) {
	row := j.db.QueryRow(`SELECT `+versionColumns+` FROM path_versions WHERE scope = ? AND version = ?`, scope.Key(), n)
	v, err := scanVersion(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
