// Package testutil provides reusable test utilities for filabel tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/filabel/internal/store"
)

// TestDataset is a temporary directory holding sample files and a catalog database.
type TestDataset struct {
	Path   string
	DBPath string
	DB     *store.Database

	t      *testing.T
	labels []string
	splits []string
	images []string
}

// NewTestDataset creates a new test dataset builder.
// Call Build() to create the directory, files and database.
func NewTestDataset(t *testing.T) *TestDataset {
	t.Helper()
	return &TestDataset{t: t}
}

// WithLabels registers labels when the dataset is built.
func (d *TestDataset) WithLabels(names ...string) *TestDataset {
	d.labels = append(d.labels, names...)
	return d
}

// WithSplits registers splits when the dataset is built.
func (d *TestDataset) WithSplits(names ...string) *TestDataset {
	d.splits = append(d.splits, names...)
	return d
}

// WithImages creates placeholder sample files, relative to the dataset root.
func (d *TestDataset) WithImages(names ...string) *TestDataset {
	d.images = append(d.images, names...)
	return d
}

// Build creates the dataset directory, sample files and catalog database.
func (d *TestDataset) Build() *TestDataset {
	d.t.Helper()

	d.Path = d.t.TempDir()
	for _, name := range d.images {
		d.WriteFile(name, "\x89PNG\r\n")
	}

	d.DBPath = filepath.Join(d.Path, store.DefaultLocator)
	db, err := store.Open(d.DBPath)
	if err != nil {
		d.t.Fatalf("failed to open catalog: %v", err)
	}
	d.t.Cleanup(func() { db.Close() })
	d.DB = db

	err = db.Update(func(tx *store.Tx) error {
		for _, name := range d.labels {
			if _, err := tx.UpsertName(store.Labels, name); err != nil {
				return err
			}
		}
		for _, name := range d.splits {
			if _, err := tx.UpsertName(store.Splits, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		d.t.Fatalf("failed to register names: %v", err)
	}

	return d
}

// WriteFile writes a file into the dataset, creating directories as needed,
// and returns its full path.
func (d *TestDataset) WriteFile(relPath, content string) string {
	d.t.Helper()
	fullPath := filepath.Join(d.Path, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		d.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		d.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
	return fullPath
}

// ReadFile returns the content of a file in the dataset.
func (d *TestDataset) ReadFile(relPath string) string {
	d.t.Helper()
	data, err := os.ReadFile(filepath.Join(d.Path, relPath))
	if err != nil {
		d.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(data)
}

// Image returns the full path of a sample file.
func (d *TestDataset) Image(relPath string) string {
	return filepath.Join(d.Path, relPath)
}

// Images returns the full paths of several sample files.
func (d *TestDataset) Images(relPaths ...string) []string {
	out := make([]string, len(relPaths))
	for i, p := range relPaths {
		out[i] = d.Image(p)
	}
	return out
}
