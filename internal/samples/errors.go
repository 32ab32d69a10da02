package samples

import "errors"

var (
	// ErrAmbiguousName indicates the name is registered as both a label and a split.
	ErrAmbiguousName = errors.New("name is ambiguous, it is both a label and a split")
	// ErrUnknownName indicates the name is registered as neither a label nor a split.
	ErrUnknownName = errors.New("unknown label/split, please add it first")
	// ErrUnknownSplit indicates a move names a split that is not registered.
	ErrUnknownSplit = errors.New("unknown split, please add it first")
	// ErrConflictingFlags indicates both the label and the split were forced.
	ErrConflictingFlags = errors.New("a name cannot be forced to be both a label and a split")
	// ErrEmptyName indicates an empty label or split name. The empty name is reserved for "no split".
	ErrEmptyName = errors.New("name must not be empty")
	// ErrReservedName indicates a split named "null", the key that holds samples
	// without a split in catalog documents.
	ErrReservedName = errors.New(`"null" is reserved for samples without a split`)
	// ErrInvalidPercentage indicates a move percentage outside [0, 100].
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
)
