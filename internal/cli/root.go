// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/filabel/internal/audit"
	"github.com/aidanlsb/filabel/internal/config"
	"github.com/aidanlsb/filabel/internal/logging"
	"github.com/aidanlsb/filabel/internal/report"
	"github.com/aidanlsb/filabel/internal/samples"
	"github.com/aidanlsb/filabel/internal/store"
	"github.com/aidanlsb/filabel/internal/ui"
)

var (
	// Global flags
	dbFlag     string // Catalog locator (path or sqlite:// URL)
	configPath string
	verbose    bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
	logger             = zap.NewNop()
	journal            = audit.New("")
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "filabel",
	Short: "filabel - label and split image datasets",
	Long: `filabel keeps a catalog of sample files for image classification.
Each file gets a label (its class) and optionally a split (train, test, ...).
The catalog lives in a single SQLite file.

Examples:
  filabel labels cat dog
  filabel splits train test
  filabel add cat images/cat/*.jpg
  filabel move "" train 80
  filabel move "" test 100
  filabel list --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		resolvedConfigPath = config.ResolvePath(configPath)

		var err error
		cfg, err = config.LoadOptional(resolvedConfigPath)
		if err != nil {
			return &commandError{code: ErrConfigInvalid, err: err}
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		logger, err = logging.New(logging.Options{Level: cfg.LogLevel, Verbose: verbose})
		if err != nil {
			return &commandError{code: ErrConfigInvalid, err: err}
		}

		journal = audit.New(cfg.AuditLogPath(filepath.Dir(resolvedConfigPath)))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the CLI, printing any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Catalog database file or sqlite:// URL (default from config, then "+store.DefaultLocator+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Log per-sample decisions to stderr")
}

// openDatabase opens the catalog selected by --db, $FILABEL_DB or the config.
func openDatabase() (*store.Database, error) {
	locator := cfg.DatabaseLocator(dbFlag)
	logger.Debug("opening catalog", zap.String("locator", locator))

	db, err := store.Open(locator)
	if err != nil {
		return nil, &commandError{code: ErrDatabaseError, err: err}
	}
	return db, nil
}

func newEngine(db *store.Database, opts ...samples.Option) *samples.Engine {
	return samples.New(db, append([]samples.Option{samples.WithLogger(logger)}, opts...)...)
}

// record writes a journal entry. A failed write is logged but does not fail
// the command, since the catalog change has already been committed.
func record(err error) {
	if err != nil {
		logger.Warn("failed to write audit entry", zap.String("path", journal.Path()), zap.Error(err))
	}
}

// printStatistics prints the sample counts per label and split.
func printStatistics(w io.Writer, db *store.Database) error {
	stats, err := report.Statistics(db)
	if err != nil {
		return &commandError{code: ErrDatabaseError, err: err}
	}
	if len(stats) == 0 {
		fmt.Fprintln(w, ui.Hint("No labeled samples."))
		return nil
	}
	return report.WriteStatistics(w, stats)
}
