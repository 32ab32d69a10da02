// Package store handles the SQLite catalog database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DefaultLocator is the catalog file used when no locator is configured.
const DefaultLocator = "dataset.sqlite"

// CurrentDBVersion is the current database schema version.
// v1: labels, splits, samples_labels, samples_splits with filename indexes
const CurrentDBVersion = 1

var (
	// ErrUnsupportedLocator indicates a connection URL with a scheme other than sqlite/file.
	ErrUnsupportedLocator = errors.New("unsupported database locator")
)

// Database is the SQLite database handle.
type Database struct {
	db  *sql.DB
	dsn string
}

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// DSN returns the resolved data source name the database was opened with.
func (d *Database) DSN() string {
	return d.dsn
}

// ResolveLocator turns a filesystem path or connection URL into a SQLite DSN.
//
// Bare paths are used as-is. sqlite:// URLs follow the usual convention where
// the path starts after the third slash, so sqlite:///dataset.sqlite is relative
// and sqlite:////data/dataset.sqlite is absolute. An empty sqlite:// URL is an
// in-memory database. file: URIs are passed to the driver unchanged.
func ResolveLocator(locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		locator = DefaultLocator
	}

	if strings.HasPrefix(locator, "file:") {
		return locator, nil
	}

	scheme, rest, ok := strings.Cut(locator, "://")
	if !ok {
		return locator, nil
	}

	switch strings.ToLower(scheme) {
	case "sqlite", "sqlite3":
		rest = strings.TrimPrefix(rest, "/")
		if rest == "" {
			return ":memory:", nil
		}
		return rest, nil
	default:
		return "", fmt.Errorf("%w: %s (only sqlite:// and file: URLs are supported)", ErrUnsupportedLocator, locator)
	}
}

// Open opens or creates the catalog database at locator.
func Open(locator string) (*Database, error) {
	dsn, err := ResolveLocator(locator)
	if err != nil {
		return nil, err
	}

	if isFileDSN(dsn) {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	return openDSN(dsn)
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	return openDSN(":memory:")
}

func openDSN(dsn string) (*Database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: keeps :memory: databases alive across calls and
	// matches the single-writer model of the CLI.
	db.SetMaxOpenConns(1)

	d := &Database{db: db, dsn: dsn}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

func isFileDSN(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

// initialize creates the database schema.
func (d *Database) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS labels (
			id INTEGER PRIMARY KEY AUTOINCREMENT
		);

		CREATE TABLE IF NOT EXISTS splits (
			id INTEGER PRIMARY KEY AUTOINCREMENT
		);

		CREATE TABLE IF NOT EXISTS samples_labels (
			id INTEGER PRIMARY KEY AUTOINCREMENT
		);

		CREATE TABLE IF NOT EXISTS samples_splits (
			id INTEGER PRIMARY KEY AUTOINCREMENT
		);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	for _, table := range tableColumns {
		if err := ensureColumns(d.db, table.name, table.columns); err != nil {
			return err
		}
	}

	indexes := `
		CREATE INDEX IF NOT EXISTS ix_samples_labels_filename ON samples_labels(filename);
		CREATE INDEX IF NOT EXISTS ix_samples_splits_filename ON samples_splits(filename);
	`
	if _, err := d.db.Exec(indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	_, err := d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", CurrentDBVersion))
	if err != nil {
		return fmt.Errorf("failed to set database version: %w", err)
	}

	return nil
}

type tableSpec struct {
	name    string
	columns []string
}

// Columns are added one at a time so catalogs created by older tools, which
// may carry only some of them, are upgraded in place.
var tableColumns = []tableSpec{
	{name: string(Labels), columns: []string{"name"}},
	{name: string(Splits), columns: []string{"name"}},
	{name: string(LabelAssignments), columns: []string{"name", "filename"}},
	{name: string(SplitAssignments), columns: []string{"name", "filename"}},
}

func ensureColumns(db *sql.DB, table string, columns []string) error {
	existing, err := tableColumnNames(db, table)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}

	for _, col := range columns {
		if existing[col] {
			continue
		}
		if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", table, col)); err != nil {
			return fmt.Errorf("failed to add column %s.%s: %w", table, col, err)
		}
	}
	return nil
}

func tableColumnNames(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
