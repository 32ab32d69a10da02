package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("label", "train", "(no split)")
	tbl.AddRow("cat", "12", "3")
	tbl.AddRow("hedgehog", "1")

	want := "" +
		"label     train  (no split)\n" +
		"cat       12     3\n" +
		"hedgehog  1      \n"
	assert.Equal(t, want, tbl.String())
}

func TestTableEmpty(t *testing.T) {
	assert.Empty(t, NewTable(2).String())
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 sample", Count(1, "sample", "samples"))
	assert.Equal(t, "0 samples", Count(0, "sample", "samples"))
}
