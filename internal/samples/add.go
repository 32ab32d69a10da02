package samples

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aidanlsb/filabel/internal/catalog"
	"github.com/aidanlsb/filabel/internal/store"
)

// Correction records a sample whose previous association was replaced.
type Correction struct {
	Filename string
	Previous string
}

// AddResult describes the outcome of AddSamples.
type AddResult struct {
	// Registry is where Name was resolved: labels or splits.
	Registry store.Registry
	Name     string
	// Registered is true when Name was created by this call.
	Registered  bool
	Added       []string
	Unchanged   []string
	Corrections []Correction
	// Skipped lists arguments that are not regular files.
	Skipped []string
}

// AddSamples associates files with name, which must resolve to exactly one of
// a registered label or split. forceLabel and forceSplit restrict resolution
// to one registry and register the name there if it is missing.
//
// A file already associated with name is left alone. A file associated with a
// different name in the same table is corrected. Paths that are not regular
// files are skipped without failing the batch.
func (e *Engine) AddSamples(name string, files []string, forceLabel, forceSplit bool) (*AddResult, error) {
	reg, register, err := e.resolve(name, forceLabel, forceSplit)
	if err != nil {
		return nil, err
	}
	if reg == store.Splits && name == catalog.NoSplitKey {
		return nil, fmt.Errorf("%s: %w", reg, ErrReservedName)
	}

	res := &AddResult{Registry: reg, Name: name}
	table := reg.Assignments()

	err = e.db.Update(func(tx *store.Tx) error {
		if register {
			inserted, err := tx.UpsertName(reg, name)
			if err != nil {
				return err
			}
			res.Registered = inserted
		}

		for _, file := range files {
			if !e.isFile(file) {
				e.logger.Debug("skipping non-file", zap.String("file", file))
				res.Skipped = append(res.Skipped, file)
				continue
			}

			prev, found, err := tx.Assignment(table, file)
			if err != nil {
				return err
			}
			if found {
				if prev == name {
					res.Unchanged = append(res.Unchanged, file)
					continue
				}
				if _, err := tx.DeleteAssignments(table, file); err != nil {
					return err
				}
				res.Corrections = append(res.Corrections, Correction{Filename: file, Previous: prev})
				e.logger.Debug("correcting sample", zap.String("file", file), zap.String("from", prev), zap.String("to", name))
			}

			if err := tx.InsertAssignment(table, name, file); err != nil {
				return err
			}
			res.Added = append(res.Added, file)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// resolve decides which registry name belongs to and whether it must be registered.
func (e *Engine) resolve(name string, forceLabel, forceSplit bool) (store.Registry, bool, error) {
	if name == "" {
		return "", false, ErrEmptyName
	}
	if forceLabel && forceSplit {
		return "", false, ErrConflictingFlags
	}

	isLabel, err := e.db.HasName(store.Labels, name)
	if err != nil {
		return "", false, err
	}
	isSplit, err := e.db.HasName(store.Splits, name)
	if err != nil {
		return "", false, err
	}

	if forceSplit {
		isLabel = false
	}
	if forceLabel {
		isSplit = false
	}

	switch {
	case isLabel && isSplit:
		return "", false, fmt.Errorf("%q: %w", name, ErrAmbiguousName)
	case isLabel:
		return store.Labels, false, nil
	case isSplit:
		return store.Splits, false, nil
	case forceLabel:
		return store.Labels, true, nil
	case forceSplit:
		return store.Splits, true, nil
	default:
		return "", false, fmt.Errorf("%q: %w", name, ErrUnknownName)
	}
}
