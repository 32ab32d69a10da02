// Package report renders catalog statistics and listings.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/filabel/internal/catalog"
	"github.com/aidanlsb/filabel/internal/store"
)

// NoSplitLabel names the missing split in statistics lines.
const NoSplitLabel = "(no split)"

// NoSplitCSV names the missing split in CSV listings.
const NoSplitCSV = "null"

// Format selects how List renders the catalog.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a user-facing format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (expected csv, json or yaml)", s)
}

// Statistics returns the sample counts per label and split.
func Statistics(db *store.Database) ([]store.Stat, error) {
	return db.Stats()
}

// FormatStat renders one statistics line.
func FormatStat(s store.Stat) string {
	split := s.Split
	if split == "" {
		split = NoSplitLabel
	}
	return fmt.Sprintf("%s %s: %d sample(s)", s.Label, split, s.Count)
}

// WriteStatistics writes one FormatStat line per entry.
func WriteStatistics(w io.Writer, stats []store.Stat) error {
	for _, s := range stats {
		if _, err := fmt.Fprintln(w, FormatStat(s)); err != nil {
			return err
		}
	}
	return nil
}

// Total sums the counts of stats.
func Total(stats []store.Stat) int {
	n := 0
	for _, s := range stats {
		n += s.Count
	}
	return n
}

// WriteCSV writes label,split,filename per row, with "null" for a missing split.
func WriteCSV(w io.Writer, rows []store.Row) error {
	cw := csv.NewWriter(w)
	for _, r := range rows {
		split := r.Split
		if split == "" {
			split = NoSplitCSV
		}
		if err := cw.Write([]string{r.Label, split, r.Filename}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the catalog document as indented JSON.
func WriteJSON(w io.Writer, c *catalog.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// WriteYAML writes the catalog document as YAML.
func WriteYAML(w io.Writer, c *catalog.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// ListSplit writes label_id,label,filename for every sample in split, where
// label_id is the label's index in the catalog. A non-empty label restricts
// the rows to that label. The empty split selects samples with no split.
func ListSplit(w io.Writer, db *store.Database, split, label string) error {
	c, err := catalog.Build(db)
	if err != nil {
		return err
	}
	view, err := c.Split(split)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	writeLabel := func(id int, files []string) error {
		name, _ := view.LabelByID(id)
		for _, f := range files {
			if err := cw.Write([]string{strconv.Itoa(id), name, f}); err != nil {
				return err
			}
		}
		return nil
	}

	if label != "" {
		files, err := view.SamplesForLabel(label)
		if err != nil {
			return err
		}
		id, _ := view.LabelID(label)
		if err := writeLabel(id, files); err != nil {
			return err
		}
	} else {
		for id, files := range view.Samples {
			if err := writeLabel(id, files); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// List writes the whole catalog in format.
func List(w io.Writer, db *store.Database, format Format) error {
	switch format {
	case FormatJSON, FormatYAML:
		c, err := catalog.Build(db)
		if err != nil {
			return err
		}
		if format == FormatJSON {
			return WriteJSON(w, c)
		}
		return WriteYAML(w, c)
	default:
		rows, err := db.Rows()
		if err != nil {
			return err
		}
		return WriteCSV(w, rows)
	}
}
