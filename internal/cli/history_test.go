package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aidanlsb/filabel/internal/audit"
)

func TestDescribeEntry(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	train := "train"
	pct := 12.5

	tests := []struct {
		name  string
		entry audit.Entry
		want  string
	}{
		{
			"register",
			audit.Entry{Timestamp: ts, Operation: audit.OpRegister, Registry: "labels", Names: []string{"cat", "dog"}},
			"register labels: cat, dog",
		},
		{
			"add",
			audit.Entry{Timestamp: ts, Operation: audit.OpAdd, Names: []string{"cat"}, Count: 3},
			"add 3 samples to cat",
		},
		{
			"move from no split",
			audit.Entry{Timestamp: ts, Operation: audit.OpMove, Dest: &train, Percentage: &pct, Count: 1},
			"move 1 sample (12.5%) from (no split) to train",
		},
		{
			"remove",
			audit.Entry{Timestamp: ts, Operation: audit.OpRemove, Count: 2},
			"remove 2 rows",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeEntry(tt.entry)
			assert.Contains(t, got, "2026-03-01 12:00:00")
			assert.Contains(t, got, tt.want)
		})
	}
}
