package testutil

import (
	"database/sql"

	"github.com/aidanlsb/filabel/internal/store"
)

// assignment returns the names filename has in table, in insertion order.
func (d *TestDataset) assignment(table store.AssignmentTable, filename string) []sql.NullString {
	d.t.Helper()
	rows, err := d.DB.DB().Query("SELECT name FROM "+string(table)+" WHERE filename = ? ORDER BY id", filename)
	if err != nil {
		d.t.Fatalf("query %s: %v", table, err)
	}
	defer rows.Close()

	var out []sql.NullString
	for rows.Next() {
		var ns sql.NullString
		if err := rows.Scan(&ns); err != nil {
			d.t.Fatalf("scan %s: %v", table, err)
		}
		out = append(out, ns)
	}
	if err := rows.Err(); err != nil {
		d.t.Fatalf("query %s: %v", table, err)
	}
	return out
}

// AssertLabel fails the test unless filename has exactly one label row, naming label.
func (d *TestDataset) AssertLabel(filename, label string) {
	d.t.Helper()
	d.assertSingle(store.LabelAssignments, filename, label)
}

// AssertSplit fails the test unless filename has exactly one split row, naming split.
func (d *TestDataset) AssertSplit(filename, split string) {
	d.t.Helper()
	d.assertSingle(store.SplitAssignments, filename, split)
}

// AssertNoSplit fails the test if filename has a named split.
func (d *TestDataset) AssertNoSplit(filename string) {
	d.t.Helper()
	for _, ns := range d.assignment(store.SplitAssignments, filename) {
		if ns.Valid {
			d.t.Errorf("expected %s to have no split, got %q", filename, ns.String)
		}
	}
}

// AssertNotInCatalog fails the test if filename has any association row.
func (d *TestDataset) AssertNotInCatalog(filename string) {
	d.t.Helper()
	for _, table := range store.AssignmentTables {
		if rows := d.assignment(table, filename); len(rows) > 0 {
			d.t.Errorf("expected %s to be absent from %s, found %d row(s)", filename, table, len(rows))
		}
	}
}

// AssertCount fails the test unless table holds n rows.
func (d *TestDataset) AssertCount(table store.AssignmentTable, n int) {
	d.t.Helper()
	got, err := d.DB.CountAssignments(table)
	if err != nil {
		d.t.Fatalf("count %s: %v", table, err)
	}
	if got != n {
		d.t.Errorf("expected %d row(s) in %s, got %d", n, table, got)
	}
}

func (d *TestDataset) assertSingle(table store.AssignmentTable, filename, name string) {
	d.t.Helper()
	rows := d.assignment(table, filename)
	if len(rows) != 1 {
		d.t.Errorf("expected exactly one %s row for %s, got %d", table, filename, len(rows))
		return
	}
	if rows[0].String != name {
		d.t.Errorf("expected %s to be %q in %s, got %q", filename, name, table, rows[0].String)
	}
}
