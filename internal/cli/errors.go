package cli

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/aidanlsb/filabel/internal/catalog"
	"github.com/aidanlsb/filabel/internal/samples"
	"github.com/aidanlsb/filabel/internal/store"
	"github.com/aidanlsb/filabel/internal/ui"
)

// Error codes reported with failed commands.
const (
	ErrAmbiguousName  = "AMBIGUOUS_NAME"
	ErrUnknownName    = "UNKNOWN_NAME"
	ErrUnknownSplit   = "UNKNOWN_SPLIT"
	ErrInvalidInput   = "INVALID_INPUT"
	ErrConfigInvalid  = "CONFIG_INVALID"
	ErrDatabaseError  = "DATABASE_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"
	ErrInternal       = "INTERNAL_ERROR"
)

// commandError attaches a code and an optional suggestion to an error.
type commandError struct {
	code       string
	err        error
	suggestion string
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

// describeError returns the code and suggestion for err.
func describeError(err error) (code, suggestion string) {
	var ce *commandError
	if errors.As(err, &ce) {
		code, suggestion = ce.code, ce.suggestion
	}

	switch {
	case errors.Is(err, samples.ErrAmbiguousName):
		return ErrAmbiguousName, "Pass --label or --split to say which one you mean"
	case errors.Is(err, samples.ErrUnknownName):
		return ErrUnknownName, "Register it with 'filabel labels <name>' or 'filabel splits <name>', or pass --label/--split"
	case errors.Is(err, samples.ErrUnknownSplit):
		return ErrUnknownSplit, "Register it with 'filabel splits <name>'"
	case errors.Is(err, catalog.ErrSplitNotFound):
		return ErrUnknownSplit, "Run 'filabel splits' to see the registered splits"
	case errors.Is(err, catalog.ErrLabelNotFound):
		return ErrUnknownName, "Run 'filabel labels' to see the registered labels"
	case errors.Is(err, samples.ErrConflictingFlags),
		errors.Is(err, samples.ErrEmptyName),
		errors.Is(err, samples.ErrInvalidPercentage):
		return ErrInvalidInput, suggestion
	case errors.Is(err, samples.ErrReservedName):
		return ErrInvalidInput, "Pick another split name, or pass no split to leave samples unsplit"
	case errors.Is(err, catalog.ErrReservedSplit):
		return ErrInvalidInput, "Move its samples to another split, then run 'filabel splits --remove null'"
	case errors.Is(err, store.ErrUnsupportedLocator):
		return ErrDatabaseError, "Use a file path or a sqlite:// URL"
	}

	if code == "" {
		code = ErrInternal
	}
	return code, suggestion
}

func printError(w io.Writer, err error) {
	code, suggestion := describeError(err)
	logger.Debug("command failed", zap.String("code", code), zap.Error(err))
	fmt.Fprintln(w, ui.Error(err.Error()))
	if suggestion != "" {
		fmt.Fprintln(w, ui.Hint("  "+suggestion))
	}
}
