package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aidanlsb/filabel/internal/sqlutil"
)

// Registry names one of the two name registries.
type Registry string

const (
	Labels Registry = "labels"
	Splits Registry = "splits"
)

// AssignmentTable names one of the two filename association tables.
type AssignmentTable string

const (
	LabelAssignments AssignmentTable = "samples_labels"
	SplitAssignments AssignmentTable = "samples_splits"
)

// AssignmentTables lists both association tables.
var AssignmentTables = []AssignmentTable{LabelAssignments, SplitAssignments}

// Assignments returns the association table for samples named from this registry.
func (r Registry) Assignments() AssignmentTable {
	if r == Splits {
		return SplitAssignments
	}
	return LabelAssignments
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Names returns every registered name in the registry, sorted.
func (d *Database) Names(reg Registry) ([]string, error) {
	return names(d.db, reg)
}

// HasName reports whether name is registered.
func (d *Database) HasName(reg Registry, name string) (bool, error) {
	return hasName(d.db, reg, name)
}

func names(q querier, reg Registry) ([]string, error) {
	rows, err := q.Query("SELECT name FROM " + string(reg) + " WHERE name IS NOT NULL ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", reg, err)
	}
	out, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (string, error) {
		var name string
		err := rows.Scan(&name)
		return name, err
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", reg, err)
	}
	return out, nil
}

func hasName(q querier, reg Registry, name string) (bool, error) {
	var one int
	err := q.QueryRow("SELECT 1 FROM "+string(reg)+" WHERE name = ? LIMIT 1", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up %s %q: %w", reg, name, err)
	}
	return true, nil
}

// Tx is a write transaction over the catalog.
type Tx struct {
	tx *sql.Tx
}

// Update runs fn inside a single transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (d *Database) Update(fn func(tx *Tx) error) error {
	sqlTx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Names returns the registered names as seen inside the transaction.
func (t *Tx) Names(reg Registry) ([]string, error) {
	return names(t.tx, reg)
}

// HasName reports whether name is registered, as seen inside the transaction.
func (t *Tx) HasName(reg Registry, name string) (bool, error) {
	return hasName(t.tx, reg, name)
}

// UpsertName registers name unless it already exists. It reports whether a row was inserted.
func (t *Tx) UpsertName(reg Registry, name string) (bool, error) {
	res, err := t.tx.Exec(
		"INSERT INTO "+string(reg)+" (name) SELECT ? WHERE NOT EXISTS (SELECT 1 FROM "+string(reg)+" WHERE name = ?)",
		name, name,
	)
	if err != nil {
		return false, fmt.Errorf("insert into %s: %w", reg, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteName removes every row registering name and returns how many were removed.
func (t *Tx) DeleteName(reg Registry, name string) (int64, error) {
	return deleteWhere(t.tx, string(reg), "name = ?", name)
}

// Assignment returns the name currently associated with filename.
// A split row whose name was moved to "no split" reports found with an empty name.
func (t *Tx) Assignment(table AssignmentTable, filename string) (name string, found bool, err error) {
	var ns sql.NullString
	err = t.tx.QueryRow("SELECT name FROM "+string(table)+" WHERE filename = ? LIMIT 1", filename).Scan(&ns)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("look up %s for %s: %w", table, filename, err)
	}
	return ns.String, true, nil
}

// InsertAssignment associates filename with name.
func (t *Tx) InsertAssignment(table AssignmentTable, name, filename string) error {
	_, err := t.tx.Exec("INSERT INTO "+string(table)+" (name, filename) VALUES (?, ?)", sqlutil.Nullable(name), filename)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// DeleteAssignments removes the rows for the given filenames and returns how many were removed.
func (t *Tx) DeleteAssignments(table AssignmentTable, filenames ...string) (int64, error) {
	var total int64
	for start := 0; start < len(filenames); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(filenames))
		ph, args := sqlutil.InClauseArgs(filenames[start:end])
		n, err := deleteWhere(t.tx, string(table), "filename IN ("+ph+")", args...)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// deleteBatchSize keeps IN clauses well under SQLite's bound-parameter limit.
const deleteBatchSize = 500

// SetSplit updates the split row for filename in place. A filename without a
// split row gets one inserted, unless split is empty (no split), where the
// absence of a row already means the same thing.
func (t *Tx) SetSplit(filename, split string) error {
	res, err := t.tx.Exec("UPDATE "+string(SplitAssignments)+" SET name = ? WHERE filename = ?", sqlutil.Nullable(split), filename)
	if err != nil {
		return fmt.Errorf("update split for %s: %w", filename, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 || split == "" {
		return nil
	}
	return t.InsertAssignment(SplitAssignments, split, filename)
}

func deleteWhere(e execer, table, where string, args ...any) (int64, error) {
	res, err := e.Exec("DELETE FROM "+table+" WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return res.RowsAffected()
}
