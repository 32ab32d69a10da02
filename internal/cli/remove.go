package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/filabel/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:   "remove [files...]",
	Short: "Remove files from the catalog",
	Long: `Removes every label and split assignment of the given files. Files that
are not in the catalog are ignored. Nothing is deleted from disk.

Examples:
  filabel remove images/cat/blurry.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := newEngine(db).RemoveSamples(args)
		if err != nil {
			return err
		}

		if rows := res.LabelRows + res.SplitRows; rows > 0 {
			record(journal.LogRemove(args, rows))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Successf("Removed %s and %s",
			ui.Count(int(res.LabelRows), "label assignment", "label assignments"),
			ui.Count(int(res.SplitRows), "split assignment", "split assignments")))
		return printStatistics(out, db)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
