// Package samples implements the catalog mutations: registering labels and
// splits, adding, correcting and removing samples, and moving a random share
// of samples between splits.
package samples

import (
	"math/rand/v2"
	"os"

	"go.uber.org/zap"

	"github.com/aidanlsb/filabel/internal/store"
)

// Engine applies mutations to a catalog database. Every operation runs in a
// single transaction.
type Engine struct {
	db     *store.Database
	rng    *rand.Rand
	isFile func(path string) bool
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes sample selection in MoveSamples deterministic.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithLogger sets the logger used for per-sample diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithFileCheck replaces the check deciding whether an added path is a regular file.
func WithFileCheck(isFile func(path string) bool) Option {
	return func(e *Engine) {
		if isFile != nil {
			e.isFile = isFile
		}
	}
}

// New returns an Engine over db.
func New(db *store.Database, opts ...Option) *Engine {
	e := &Engine{
		db:     db,
		isFile: isRegularFile,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (e *Engine) shuffle(files []string) {
	swap := func(i, j int) { files[i], files[j] = files[j], files[i] }
	if e.rng != nil {
		e.rng.Shuffle(len(files), swap)
		return
	}
	rand.Shuffle(len(files), swap)
}
