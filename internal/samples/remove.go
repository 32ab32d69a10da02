package samples

import (
	"go.uber.org/zap"

	"github.com/aidanlsb/filabel/internal/store"
)

// RemoveResult reports how many association rows RemoveSamples deleted.
type RemoveResult struct {
	LabelRows int64
	SplitRows int64
}

// RemoveSamples deletes the label and split associations of files.
// Files that are not in the catalog are ignored.
func (e *Engine) RemoveSamples(files []string) (*RemoveResult, error) {
	res := &RemoveResult{}
	err := e.db.Update(func(tx *store.Tx) error {
		var err error
		if res.LabelRows, err = tx.DeleteAssignments(store.LabelAssignments, files...); err != nil {
			return err
		}
		res.SplitRows, err = tx.DeleteAssignments(store.SplitAssignments, files...)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("removed samples",
		zap.Int("files", len(files)),
		zap.Int64("label_rows", res.LabelRows),
		zap.Int64("split_rows", res.SplitRows))
	return res, nil
}
