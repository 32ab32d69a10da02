package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aidanlsb/filabel/internal/catalog"
	"github.com/aidanlsb/filabel/internal/samples"
	"github.com/aidanlsb/filabel/internal/store"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantCode       string
		wantSuggestion bool
	}{
		{"ambiguous", fmt.Errorf("%q: %w", "x", samples.ErrAmbiguousName), ErrAmbiguousName, true},
		{"unknown name", fmt.Errorf("%q: %w", "x", samples.ErrUnknownName), ErrUnknownName, true},
		{"unknown split", fmt.Errorf("%q: %w", "x", samples.ErrUnknownSplit), ErrUnknownSplit, true},
		{"conflicting flags", samples.ErrConflictingFlags, ErrInvalidInput, false},
		{"empty name", samples.ErrEmptyName, ErrInvalidInput, false},
		{
			"bad percentage with suggestion",
			&commandError{code: ErrInvalidInput, err: samples.ErrInvalidPercentage, suggestion: "Pass a number"},
			ErrInvalidInput, true,
		},
		{"reserved split name", fmt.Errorf("splits: %w", samples.ErrReservedName), ErrInvalidInput, true},
		{"legacy null split", catalog.ErrReservedSplit, ErrInvalidInput, true},
		{"split not in catalog", fmt.Errorf("%q: %w", "val", catalog.ErrSplitNotFound), ErrUnknownSplit, true},
		{"label not in catalog", fmt.Errorf("%q: %w", "bird", catalog.ErrLabelNotFound), ErrUnknownName, true},
		{"locator", &commandError{code: ErrDatabaseError, err: store.ErrUnsupportedLocator}, ErrDatabaseError, true},
		{"coded", &commandError{code: ErrFileWriteError, err: errors.New("disk full")}, ErrFileWriteError, false},
		{"plain", errors.New("boom"), ErrInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, suggestion := describeError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantSuggestion, suggestion != "")
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, fmt.Errorf("%q: %w", "bird", samples.ErrUnknownName))

	out := buf.String()
	assert.Contains(t, out, `"bird": unknown label/split`)
	assert.Contains(t, out, "filabel labels <name>")
}
