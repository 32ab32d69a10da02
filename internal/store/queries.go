package store

import (
	"database/sql"
	"fmt"

	"github.com/aidanlsb/filabel/internal/sqlutil"
)

// LabeledFile is one label assignment joined to a split value.
type LabeledFile struct {
	Label    string
	Filename string
}

// Stat is the sample count for one (label, split) pair. Split is empty for
// samples without a split.
type Stat struct {
	Label string `json:"label"`
	Split string `json:"split"`
	Count int    `json:"count"`
}

// Row is one labeled sample with its split. Split is empty for samples without a split.
type Row struct {
	Label    string `json:"label"`
	Split    string `json:"split"`
	Filename string `json:"filename"`
}

// LabeledFiles returns every label assignment whose split is split (empty for
// no split), ordered by label then filename.
func (d *Database) LabeledFiles(split string) ([]LabeledFile, error) {
	return labeledFiles(d.db, split)
}

// LabeledFiles is LabeledFiles as seen inside the transaction.
func (t *Tx) LabeledFiles(split string) ([]LabeledFile, error) {
	return labeledFiles(t.tx, split)
}

func labeledFiles(q querier, split string) ([]LabeledFile, error) {
	// IS rather than = so a NULL parameter selects samples with no split row
	// (or a split row whose name is NULL).
	rows, err := q.Query(`
		SELECT samples_labels.name, samples_labels.filename
		FROM samples_labels
		LEFT JOIN samples_splits ON samples_labels.filename = samples_splits.filename
		WHERE samples_splits.name IS ?
		ORDER BY samples_labels.name, samples_labels.filename
	`, sqlutil.Nullable(split))
	if err != nil {
		return nil, fmt.Errorf("query samples for split %q: %w", split, err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (LabeledFile, error) {
		var lf LabeledFile
		err := rows.Scan(&lf.Label, &lf.Filename)
		return lf, err
	})
}

// Stats counts labeled samples grouped by label and split, ordered by label then split.
func (d *Database) Stats() ([]Stat, error) {
	rows, err := d.db.Query(`
		SELECT samples_labels.name, samples_splits.name, COUNT(*)
		FROM samples_labels
		LEFT JOIN samples_splits ON samples_labels.filename = samples_splits.filename
		GROUP BY samples_labels.name, samples_splits.name
		ORDER BY samples_labels.name, samples_splits.name
	`)
	if err != nil {
		return nil, fmt.Errorf("query statistics: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (Stat, error) {
		var s Stat
		var split sql.NullString
		err := rows.Scan(&s.Label, &split, &s.Count)
		s.Split = split.String
		return s, err
	})
}

// Rows returns every labeled sample with its split, ordered by label, split and filename.
func (d *Database) Rows() ([]Row, error) {
	rows, err := d.db.Query(`
		SELECT samples_labels.name, samples_splits.name, samples_labels.filename
		FROM samples_labels
		LEFT JOIN samples_splits ON samples_labels.filename = samples_splits.filename
		ORDER BY samples_labels.name, samples_splits.name, samples_labels.filename
	`)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (Row, error) {
		var r Row
		var split sql.NullString
		err := rows.Scan(&r.Label, &split, &r.Filename)
		r.Split = split.String
		return r, err
	})
}

// CountAssignments returns the number of rows in an association table.
func (d *Database) CountAssignments(table AssignmentTable) (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM " + string(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
