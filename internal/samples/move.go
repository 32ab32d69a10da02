package samples

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/aidanlsb/filabel/internal/catalog"
	"github.com/aidanlsb/filabel/internal/store"
)

// MovedGroup is the share of one label moved by MoveSamples.
type MovedGroup struct {
	Label string
	// Total is the number of samples of Label in the source split.
	Total int
	// Moved is the randomly selected subset that now belongs to the destination.
	Moved []string
}

// MoveResult describes the outcome of MoveSamples.
type MoveResult struct {
	Source string
	Dest   string
	Groups []MovedGroup
}

// Count returns the total number of moved samples.
func (r *MoveResult) Count() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Moved)
	}
	return n
}

// SelectCount returns how many of n samples a percentage selects, rounding
// half away from zero.
func SelectCount(n int, percentage float64) int {
	return int(math.Round(float64(n) * percentage / 100.0))
}

// MoveSamples moves a random percentage of the samples in source to dest,
// separately for every label so the class balance of the moved share follows
// the source split. An empty source or dest means "no split".
func (e *Engine) MoveSamples(source, dest string, percentage float64) (*MoveResult, error) {
	if math.IsNaN(percentage) || percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("%v: %w", percentage, ErrInvalidPercentage)
	}
	for _, split := range []string{source, dest} {
		if split == "" {
			continue
		}
		ok, err := e.db.HasName(store.Splits, split)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%q: %w", split, ErrUnknownSplit)
		}
	}

	res := &MoveResult{Source: source, Dest: dest}
	err := e.db.Update(func(tx *store.Tx) error {
		files, err := tx.LabeledFiles(source)
		if err != nil {
			return err
		}

		groups := catalog.GroupByLabel(files)
		labels := make([]string, 0, len(groups))
		for label := range groups {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		for _, label := range labels {
			group := groups[label]
			e.shuffle(group)
			selected := group[:SelectCount(len(group), percentage)]

			// Unsplit samples usually have no samples_splits row at all.
			// SetSplit inserts one for them, so they still get the new split.
			for _, file := range selected {
				if err := tx.SetSplit(file, dest); err != nil {
					return err
				}
			}
			e.logger.Debug("moved samples",
				zap.String("label", label),
				zap.Int("moved", len(selected)),
				zap.Int("total", len(group)))
			res.Groups = append(res.Groups, MovedGroup{Label: label, Total: len(group), Moved: selected})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
