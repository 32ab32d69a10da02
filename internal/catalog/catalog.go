// Package catalog builds the per-split, per-label view of the dataset.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/filabel/internal/store"
)

// NoSplitKey is the document key used for samples without a split.
const NoSplitKey = "null"

// ErrReservedSplit indicates a registered split named NoSplitKey. Its samples
// and the samples without a split would share one document key.
var ErrReservedSplit = errors.New(`a split named "null" collides with samples without a split`)

var (
	ErrSplitNotFound = errors.New("split not in catalog")
	ErrLabelNotFound = errors.New("label not in catalog")
)

// Catalog is the derived view of the dataset: for every split (and for
// samples with no split) the filenames of each label.
type Catalog struct {
	// Labels is every registered label, sorted.
	Labels []string
	// Splits maps split name to its view. The empty key holds samples with no split.
	Splits map[string]*SplitView
}

// SplitView lists the samples of one split, grouped by label.
// Samples[i] holds the filenames labeled Labels[i], sorted.
type SplitView struct {
	Split   string
	Labels  []string
	Samples [][]string
}

// Source is the subset of the store the catalog is built from.
type Source interface {
	Names(reg store.Registry) ([]string, error)
	LabeledFiles(split string) ([]store.LabeledFile, error)
}

// Build reads the store and returns a fresh catalog.
func Build(src Source) (*Catalog, error) {
	labels, err := src.Names(store.Labels)
	if err != nil {
		return nil, err
	}
	splits, err := src.Names(store.Splits)
	if err != nil {
		return nil, err
	}
	for _, split := range splits {
		if split == NoSplitKey {
			return nil, ErrReservedSplit
		}
	}

	c := &Catalog{
		Labels: labels,
		Splits: make(map[string]*SplitView, len(splits)+1),
	}

	for _, split := range append(splits, "") {
		files, err := src.LabeledFiles(split)
		if err != nil {
			return nil, err
		}
		c.Splits[split] = &SplitView{
			Split:   split,
			Labels:  labels,
			Samples: Group(files, labels),
		}
	}

	return c, nil
}

// Group arranges files into one filename list per label, aligned to labels.
// Labels without files get an empty list; files whose label is not listed are dropped.
func Group(files []store.LabeledFile, labels []string) [][]string {
	byLabel := GroupByLabel(files)
	out := make([][]string, len(labels))
	for i, label := range labels {
		group := byLabel[label]
		if group == nil {
			group = []string{}
		}
		sort.Strings(group)
		out[i] = group
	}
	return out
}

// GroupByLabel collects filenames per label, keeping input order within each label.
func GroupByLabel(files []store.LabeledFile) map[string][]string {
	out := make(map[string][]string)
	for _, f := range files {
		out[f.Label] = append(out[f.Label], f.Filename)
	}
	return out
}

// Split returns the view for a split. The empty name selects samples with no split.
func (c *Catalog) Split(name string) (*SplitView, error) {
	view, ok := c.Splits[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrSplitNotFound)
	}
	return view, nil
}

// SplitNames returns the catalog's split names, sorted, with the no-split entry last.
func (c *Catalog) SplitNames() []string {
	var names []string
	for name := range c.Splits {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := c.Splits[""]; ok {
		names = append(names, "")
	}
	return names
}

// LabelID returns the index of label within the view.
func (v *SplitView) LabelID(label string) (int, bool) {
	for i, l := range v.Labels {
		if l == label {
			return i, true
		}
	}
	return -1, false
}

// LabelByID returns the label at index id.
func (v *SplitView) LabelByID(id int) (string, bool) {
	if id < 0 || id >= len(v.Labels) {
		return "", false
	}
	return v.Labels[id], true
}

// SamplesForLabel returns the filenames labeled label in this split.
func (v *SplitView) SamplesForLabel(label string) ([]string, error) {
	id, ok := v.LabelID(label)
	if !ok {
		return nil, fmt.Errorf("%q: %w", label, ErrLabelNotFound)
	}
	return v.Samples[id], nil
}

type splitDoc struct {
	Split   *string    `json:"split" yaml:"split"`
	Labels  []string   `json:"labels" yaml:"labels"`
	Samples [][]string `json:"samples" yaml:"samples"`
}

type catalogDoc struct {
	Splits map[string]splitDoc `json:"splits" yaml:"splits"`
}

func (c *Catalog) document() catalogDoc {
	doc := catalogDoc{Splits: make(map[string]splitDoc, len(c.Splits))}
	for _, name := range c.SplitNames() {
		view := c.Splits[name]
		key := name
		var split *string
		if name == "" {
			key = NoSplitKey
		} else {
			s := name
			split = &s
		}
		labels := view.Labels
		if labels == nil {
			labels = []string{}
		}
		doc.Splits[key] = splitDoc{Split: split, Labels: labels, Samples: view.Samples}
	}
	return doc
}

// MarshalJSON encodes the catalog as {"splits": {name: {"split", "labels", "samples"}}},
// with samples lacking a split under the "null" key. Build refuses catalogs
// with a split named "null", so every key holds exactly one split.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.document())
}

// MarshalYAML encodes the catalog with the same layout as MarshalJSON.
func (c *Catalog) MarshalYAML() (interface{}, error) {
	return c.document(), nil
}

var _ yaml.Marshaler = (*Catalog)(nil)
