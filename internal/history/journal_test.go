package history

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/envpath/internal/envstore"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordNumbersVersionsPerScope(t *testing.T) {
	j := openTemp(t)
	changes := []envstore.Change{
		{Scope: envstore.User, Op: "add", Entry: `C:\A`, Before: "", After: `C:\A`},
		{Scope: envstore.Machine, Op: "add", Entry: `C:\M`, Before: `C:\Windows`, After: `C:\Windows;C:\M`},
		{Scope: envstore.User, Op: "remove", Entry: `C:\A`, Before: `C:\A`, After: ""},
	}
	for _, c := range changes {
		require.NoError(t, j.Record(c))
	}

	user, err := j.List(envstore.User)
	require.NoError(t, err)
	require.Len(t, user, 2)
	assert.Equal(t, 2, user[0].Version)
	assert.Equal(t, "remove", user[0].Operation)
	assert.Empty(t, user[0].After)
	assert.Equal(t, 1, user[1].Version)
	assert.Equal(t, `C:\A`, user[1].Entry.String)

	machine, err := j.List(envstore.Machine)
	require.NoError(t, err)
	require.Len(t, machine, 1)
	assert.Equal(t, 1, machine[0].Version)
	assert.Equal(t, `C:\Windows`, machine[0].Before)
}

func TestGetMissingVersion(t *testing.T) {
	j := openTemp(t)
	v, err := j.Get(envstore.User, 7)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRecordWithoutEntryAndElevated(t *testing.T) {
	j := openTemp(t)
	j.SetElevated(true)
	require.NoError(t, j.Record(envstore.Change{Scope: envstore.Machine, Op: "rollback", Before: "x", After: "y"}))
	v, err := j.Get(envstore.Machine, 1)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.False(t, v.Entry.Valid, "expected NULL entry, got %q", v.Entry.String)
	assert.True(t, v.Elevated)
}

func TestStoreRecordsIntoJournal(t *testing.T) {
	j := openTemp(t)
	s := envstore.New(envstore.NewMemoryBackend(`C:\Tools`, ""), envstore.WithJournal(j))
	_, err := s.Add(envstore.User, `C:\Bin`)
	require.NoError(t, err)
	v, err := j.Get(envstore.User, 1)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, `C:\Tools`, v.Before)
	assert.Equal(t, `C:\Tools;C:\Bin`, v.After)
}

func TestApplyMigrationsAddsElevatedColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	// journal created before the elevated column existed
	_, err = db.Exec(schemaSQL)
	require.NoError(t, err)
	require.NoError(t, ApplyMigrations(db))
	// second run is a no-op
	require.NoError(t, ApplyMigrations(db))
	_, err = db.Exec("INSERT INTO path_versions (scope, version, created_at, operation, before_value, after_value, elevated) VALUES ('user', 1, datetime('now'), 'add', '', 'x', 1)")
	assert.NoError(t, err, "insert with elevated column")
}
