package samples

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aidanlsb/filabel/internal/catalog"
	"github.com/aidanlsb/filabel/internal/store"
)

// RegisterNames adds names to (or, with remove, deletes them from) a registry
// and returns the registry's full sorted contents afterwards.
func (e *Engine) RegisterNames(reg store.Registry, names []string, remove bool) ([]string, error) {
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%s: %w", reg, ErrEmptyName)
		}
		// Removing a reserved split stays allowed so old catalogs can be repaired.
		if !remove && reg == store.Splits && name == catalog.NoSplitKey {
			return nil, fmt.Errorf("%s: %w", reg, ErrReservedName)
		}
	}

	var result []string
	err := e.db.Update(func(tx *store.Tx) error {
		for _, name := range names {
			if remove {
				n, err := tx.DeleteName(reg, name)
				if err != nil {
					return err
				}
				e.logger.Debug("removed name", zap.String("registry", string(reg)), zap.String("name", name), zap.Int64("rows", n))
				continue
			}
			inserted, err := tx.UpsertName(reg, name)
			if err != nil {
				return err
			}
			e.logger.Debug("registered name", zap.String("registry", string(reg)), zap.String("name", name), zap.Bool("new", inserted))
		}

		var err error
		result, err = tx.Names(reg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
