package samples

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/filabel/internal/store"
	"github.com/aidanlsb/filabel/internal/testutil"
)

func TestSelectCount(t *testing.T) {
	tests := []struct {
		n          int
		percentage float64
		want       int
	}{
		{n: 0, percentage: 50, want: 0},
		{n: 3, percentage: 50, want: 2},
		{n: 5, percentage: 50, want: 3},
		{n: 4, percentage: 50, want: 2},
		{n: 10, percentage: 0, want: 0},
		{n: 10, percentage: 100, want: 10},
		{n: 10, percentage: 15, want: 2},
		{n: 10, percentage: 14, want: 1},
		{n: 7, percentage: 20, want: 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d at %v%%", tt.n, tt.percentage), func(t *testing.T) {
			assert.Equal(t, tt.want, SelectCount(tt.n, tt.percentage))
		})
	}
}

// labeledDataset has 3 cats and 4 dogs with no split.
func labeledDataset(t *testing.T, opts ...Option) (*testutil.TestDataset, *Engine) {
	t.Helper()
	cats := []string{"c1.jpg", "c2.jpg", "c3.jpg"}
	dogs := []string{"d1.jpg", "d2.jpg", "d3.jpg", "d4.jpg"}

	ds := testutil.NewTestDataset(t).
		WithLabels("cat", "dog").
		WithSplits("train", "test").
		WithImages(append(cats, dogs...)...).
		Build()
	e := New(ds.DB, append([]Option{WithSeed(7)}, opts...)...)

	_, err := e.AddSamples("cat", ds.Images(cats...), false, false)
	require.NoError(t, err)
	_, err = e.AddSamples("dog", ds.Images(dogs...), false, false)
	require.NoError(t, err)
	return ds, e
}

func splitCount(t *testing.T, db *store.Database, split string) int {
	t.Helper()
	files, err := db.LabeledFiles(split)
	require.NoError(t, err)
	return len(files)
}

func TestMoveSamples(t *testing.T) {
	t.Run("everything", func(t *testing.T) {
		ds, e := labeledDataset(t)

		res, err := e.MoveSamples("", "train", 100)
		require.NoError(t, err)
		assert.Equal(t, 7, res.Count())
		assert.Equal(t, 7, splitCount(t, ds.DB, "train"))
		assert.Equal(t, 0, splitCount(t, ds.DB, ""))
	})

	t.Run("nothing", func(t *testing.T) {
		ds, e := labeledDataset(t)

		res, err := e.MoveSamples("", "train", 0)
		require.NoError(t, err)
		assert.Zero(t, res.Count())
		assert.Equal(t, 0, splitCount(t, ds.DB, "train"))
		ds.AssertCount(store.SplitAssignments, 0)
	})

	t.Run("half rounds per label", func(t *testing.T) {
		ds, e := labeledDataset(t)

		res, err := e.MoveSamples("", "test", 50)
		require.NoError(t, err)
		require.Len(t, res.Groups, 2)

		assert.Equal(t, "cat", res.Groups[0].Label)
		assert.Equal(t, 3, res.Groups[0].Total)
		assert.Len(t, res.Groups[0].Moved, 2)

		assert.Equal(t, "dog", res.Groups[1].Label)
		assert.Len(t, res.Groups[1].Moved, 2)

		assert.Equal(t, 4, splitCount(t, ds.DB, "test"))
		for _, g := range res.Groups {
			for _, f := range g.Moved {
				ds.AssertSplit(f, "test")
			}
		}
	})

	t.Run("unsplit samples gain a split row", func(t *testing.T) {
		ds, e := labeledDataset(t)
		ds.AssertCount(store.SplitAssignments, 0)

		_, err := e.MoveSamples("", "train", 100)
		require.NoError(t, err)
		ds.AssertCount(store.SplitAssignments, 7)
		ds.AssertSplit(ds.Image("d4.jpg"), "train")
	})

	t.Run("updates split rows in place", func(t *testing.T) {
		ds, e := labeledDataset(t)

		_, err := e.MoveSamples("", "train", 100)
		require.NoError(t, err)
		_, err = e.MoveSamples("train", "test", 100)
		require.NoError(t, err)

		ds.AssertCount(store.SplitAssignments, 7)
		assert.Equal(t, 7, splitCount(t, ds.DB, "test"))
		assert.Equal(t, 0, splitCount(t, ds.DB, "train"))
	})

	t.Run("back to no split", func(t *testing.T) {
		ds, e := labeledDataset(t)

		_, err := e.MoveSamples("", "train", 100)
		require.NoError(t, err)
		_, err = e.MoveSamples("train", "", 100)
		require.NoError(t, err)

		assert.Equal(t, 7, splitCount(t, ds.DB, ""))
		ds.AssertNoSplit(ds.Image("c1.jpg"))
	})

	t.Run("seed makes selection repeatable", func(t *testing.T) {
		_, e1 := labeledDataset(t)
		_, e2 := labeledDataset(t)

		r1, err := e1.MoveSamples("", "train", 50)
		require.NoError(t, err)
		r2, err := e2.MoveSamples("", "train", 50)
		require.NoError(t, err)

		for i := range r1.Groups {
			assert.Equal(t, len(r1.Groups[i].Moved), len(r2.Groups[i].Moved))
			for j := range r1.Groups[i].Moved {
				assert.Equal(t, filepath.Base(r1.Groups[i].Moved[j]), filepath.Base(r2.Groups[i].Moved[j]))
			}
		}
	})

	t.Run("empty source moves nothing", func(t *testing.T) {
		_, e := labeledDataset(t)

		res, err := e.MoveSamples("test", "train", 100)
		require.NoError(t, err)
		assert.Empty(t, res.Groups)
	})

	t.Run("unknown split", func(t *testing.T) {
		ds, e := labeledDataset(t)

		_, err := e.MoveSamples("holdout", "train", 10)
		require.ErrorIs(t, err, ErrUnknownSplit)
		_, err = e.MoveSamples("", "holdout", 10)
		require.ErrorIs(t, err, ErrUnknownSplit)
		ds.AssertCount(store.SplitAssignments, 0)
	})

	t.Run("invalid percentage", func(t *testing.T) {
		_, e := labeledDataset(t)

		_, err := e.MoveSamples("", "train", 101)
		require.ErrorIs(t, err, ErrInvalidPercentage)
		_, err = e.MoveSamples("", "train", -1)
		require.ErrorIs(t, err, ErrInvalidPercentage)
	})
}
