package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/filabel/internal/store"
	"github.com/aidanlsb/filabel/internal/ui"
)

var (
	addForceLabel bool
	addForceSplit bool
)

var addCmd = &cobra.Command{
	Use:   "add <name> [files...]",
	Short: "Assign files to a label or split",
	Long: `Assigns the given files to a label or a split. The name must be registered
as exactly one of the two; use --label or --split when it is both, or to
register a new name on the fly.

A file that already has a different label (or split) is corrected. Arguments
that are not regular files are skipped with a warning.

Examples:
  filabel add cat images/cat/*.jpg
  filabel add train images/cat/001.jpg
  filabel add --label bird images/bird/*.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := newEngine(db).AddSamples(args[0], args[1:], addForceLabel, addForceSplit)
		if err != nil {
			return err
		}

		if len(res.Added) > 0 {
			record(journal.LogAdd(string(res.Registry), res.Name, res.Added))
		}

		out := cmd.OutOrStdout()
		if res.Registered {
			fmt.Fprintln(out, ui.Infof("Registered new %s %s", singular(res.Registry), ui.Name(res.Name)))
		}
		for _, f := range res.Skipped {
			fmt.Fprintln(out, ui.Warningf("%s is not a file, skipping", f))
		}
		for _, c := range res.Corrections {
			fmt.Fprintln(out, ui.Warningf("Saw %s previously as %s - correcting", c.Filename, ui.Name(c.Previous)))
		}
		if n := len(res.Added); n > 0 {
			fmt.Fprintln(out, ui.Successf("Added %s to %s", ui.Count(n, "sample", "samples"), ui.Name(res.Name)))
		}

		return printStatistics(out, db)
	},
}

// singular names one entry of a registry.
func singular(reg store.Registry) string {
	if reg == store.Splits {
		return "split"
	}
	return "label"
}

func init() {
	addCmd.Flags().BoolVar(&addForceLabel, "label", false, "Treat the name as a label, registering it if needed")
	addCmd.Flags().BoolVar(&addForceSplit, "split", false, "Treat the name as a split, registering it if needed")
	addCmd.MarkFlagsMutuallyExclusive("label", "split")
	rootCmd.AddCommand(addCmd)
}
