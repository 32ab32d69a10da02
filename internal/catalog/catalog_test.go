package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/filabel/internal/store"
)

func openSeeded(t *testing.T) *store.Database {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Update(func(tx *store.Tx) error {
		for _, name := range []string{"dog", "cat", "bird"} {
			if _, err := tx.UpsertName(store.Labels, name); err != nil {
				return err
			}
		}
		for _, name := range []string{"train", "test"} {
			if _, err := tx.UpsertName(store.Splits, name); err != nil {
				return err
			}
		}
		assign := []struct {
			table      store.AssignmentTable
			name, file string
		}{
			{store.LabelAssignments, "cat", "b.jpg"},
			{store.LabelAssignments, "cat", "a.jpg"},
			{store.LabelAssignments, "dog", "c.jpg"},
			{store.LabelAssignments, "dog", "d.jpg"},
			{store.SplitAssignments, "train", "a.jpg"},
			{store.SplitAssignments, "train", "b.jpg"},
			{store.SplitAssignments, "test", "c.jpg"},
		}
		for _, a := range assign {
			if err := tx.InsertAssignment(a.table, a.name, a.file); err != nil {
				return err
			}
		}
		return nil
	}))
	return db
}

func TestBuild(t *testing.T) {
	db := openSeeded(t)

	c, err := Build(db)
	require.NoError(t, err)

	assert.Equal(t, []string{"bird", "cat", "dog"}, c.Labels)
	assert.Len(t, c.Splits, 3)

	train, err := c.Split("train")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{}, {"a.jpg", "b.jpg"}, {}}, train.Samples)

	test, err := c.Split("test")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{}, {}, {"c.jpg"}}, test.Samples)

	unsplit, err := c.Split("")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{}, {}, {"d.jpg"}}, unsplit.Samples)

	assert.Equal(t, []string{"test", "train", ""}, c.SplitNames())

	_, err = c.Split("validation")
	assert.ErrorIs(t, err, ErrSplitNotFound)
}

func TestBuildEmptyStore(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	c, err := Build(db)
	require.NoError(t, err)
	assert.Empty(t, c.Labels)
	require.Contains(t, c.Splits, "")
	assert.Empty(t, c.Splits[""].Samples)
}

func TestSplitViewLookups(t *testing.T) {
	view := &SplitView{
		Split:   "train",
		Labels:  []string{"cat", "dog"},
		Samples: [][]string{{"a.jpg"}, {"c.jpg", "d.jpg"}},
	}

	id, ok := view.LabelID("dog")
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = view.LabelID("bird")
	assert.False(t, ok)

	label, ok := view.LabelByID(0)
	assert.True(t, ok)
	assert.Equal(t, "cat", label)

	_, ok = view.LabelByID(2)
	assert.False(t, ok)

	files, err := view.SamplesForLabel("dog")
	require.NoError(t, err)
	assert.Equal(t, []string{"c.jpg", "d.jpg"}, files)

	_, err = view.SamplesForLabel("bird")
	assert.ErrorIs(t, err, ErrLabelNotFound)
}

func TestGroupDropsUnregisteredLabels(t *testing.T) {
	files := []store.LabeledFile{
		{Label: "cat", Filename: "z.jpg"},
		{Label: "cat", Filename: "a.jpg"},
		{Label: "ghost", Filename: "g.jpg"},
	}
	assert.Equal(t, [][]string{{"a.jpg", "z.jpg"}, {}}, Group(files, []string{"cat", "dog"}))
}

func TestMarshalJSON(t *testing.T) {
	db := openSeeded(t)
	c, err := Build(db)
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var doc struct {
		Splits map[string]struct {
			Split   *string    `json:"split"`
			Labels  []string   `json:"labels"`
			Samples [][]string `json:"samples"`
		} `json:"splits"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Contains(t, doc.Splits, "train")
	require.Contains(t, doc.Splits, NoSplitKey)
	assert.Nil(t, doc.Splits[NoSplitKey].Split)
	require.NotNil(t, doc.Splits["train"].Split)
	assert.Equal(t, "train", *doc.Splits["train"].Split)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, doc.Splits["train"].Samples[1])
	assert.Equal(t, []string{"d.jpg"}, doc.Splits[NoSplitKey].Samples[2])
}

func TestMarshalYAML(t *testing.T) {
	db := openSeeded(t)
	c, err := Build(db)
	require.NoError(t, err)

	data, err := yaml.Marshal(c)
	require.NoError(t, err)

	var doc map[string]map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Contains(t, doc["splits"], "test")
	assert.Equal(t, "test", doc["splits"]["test"]["split"])
	assert.Nil(t, doc["splits"][NoSplitKey]["split"])
}

// Catalogs written before "null" was reserved may still register it as a
// split. Building one must fail rather than let the two share a key.
func TestBuildRejectsSplitNamedNull(t *testing.T) {
	db := openSeeded(t)
	require.NoError(t, db.Update(func(tx *store.Tx) error {
		if _, err := tx.UpsertName(store.Splits, NoSplitKey); err != nil {
			return err
		}
		return tx.InsertAssignment(store.SplitAssignments, NoSplitKey, "d.jpg")
	}))

	_, err := Build(db)
	require.ErrorIs(t, err, ErrReservedSplit)
}

func TestMarshalJSONIsDeterministic(t *testing.T) {
	db := openSeeded(t)
	c, err := Build(db)
	require.NoError(t, err)

	first, err := json.Marshal(c)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		data, err := json.Marshal(c)
		require.NoError(t, err)
		require.JSONEq(t, string(first), string(data))
	}
}
