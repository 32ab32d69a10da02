package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestResolveLocator(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty uses default", input: "", want: DefaultLocator},
		{name: "bare relative path", input: "data/cats.sqlite", want: "data/cats.sqlite"},
		{name: "bare absolute path", input: "/tmp/cats.sqlite", want: "/tmp/cats.sqlite"},
		{name: "sqlite relative url", input: "sqlite:///cats.sqlite", want: "cats.sqlite"},
		{name: "sqlite absolute url", input: "sqlite:////tmp/cats.sqlite", want: "/tmp/cats.sqlite"},
		{name: "sqlite memory url", input: "sqlite://", want: ":memory:"},
		{name: "file uri passthrough", input: "file:cats.sqlite?mode=rwc", want: "file:cats.sqlite?mode=rwc"},
		{name: "unsupported scheme", input: "postgresql://localhost/cats", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLocator(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedLocator)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dataset.sqlite")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)

	for _, spec := range tableColumns {
		cols, err := tableColumnNames(db.DB(), spec.name)
		require.NoError(t, err)
		for _, col := range spec.columns {
			assert.True(t, cols[col], "expected %s.%s", spec.name, col)
		}
	}

	var indexName string
	err = db.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='ix_samples_splits_filename'`).Scan(&indexName)
	require.NoError(t, err)

	var version string
	require.NoError(t, db.DB().QueryRow(`SELECT value FROM meta WHERE key = 'version'`).Scan(&version))
	assert.Equal(t, "1", version)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.sqlite")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *Tx) error {
		_, err := tx.UpsertName(Labels, "cat")
		return err
	}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	names, err := db.Names(Labels)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, names)
}

func TestOpenUpgradesPartialTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.sqlite")

	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.Exec(`
		CREATE TABLE samples_labels (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT);
		INSERT INTO samples_labels (name) VALUES ('cat');
	`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	cols, err := tableColumnNames(db.DB(), string(LabelAssignments))
	require.NoError(t, err)
	assert.True(t, cols["filename"])

	n, err := db.CountAssignments(LabelAssignments)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOpenRejectsUnsupportedLocator(t *testing.T) {
	_, err := Open("mysql://localhost/cats")
	assert.ErrorIs(t, err, ErrUnsupportedLocator)
}
