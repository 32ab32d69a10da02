package sqlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInClauseArgs(t *testing.T) {
	t.Run("empty matches nothing", func(t *testing.T) {
		ph, args := InClauseArgs(nil)
		assert.Equal(t, "NULL", ph)
		assert.Empty(t, args)
	})

	t.Run("one placeholder per item", func(t *testing.T) {
		ph, args := InClauseArgs([]string{"a.jpg", "b.jpg", "c.jpg"})
		assert.Equal(t, "?, ?, ?", ph)
		assert.Equal(t, []any{"a.jpg", "b.jpg", "c.jpg"}, args)
	})
}

func TestNullable(t *testing.T) {
	assert.Nil(t, Nullable(""))
	assert.Equal(t, "train", Nullable("train"))
}
