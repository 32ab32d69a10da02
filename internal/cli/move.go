package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/filabel/internal/report"
	"github.com/aidanlsb/filabel/internal/samples"
	"github.com/aidanlsb/filabel/internal/ui"
)

var moveSeed uint64

var moveCmd = &cobra.Command{
	Use:   "move <source> <dest> <percentage>",
	Short: "Move a random share of a split into another split",
	Long: `Moves a random percentage of the samples in the source split to the
destination split. The share is taken separately from every label, so each
class keeps its proportion. Use "" for samples that have no split yet.

Examples:
  filabel move "" train 80
  filabel move "" test 100
  filabel move train validation 10 --seed 42`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		percentage, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return &commandError{
				code:       ErrInvalidInput,
				err:        fmt.Errorf("percentage %q: %w", args[2], samples.ErrInvalidPercentage),
				suggestion: "Pass a number between 0 and 100",
			}
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		var opts []samples.Option
		if cmd.Flags().Changed("seed") {
			opts = append(opts, samples.WithSeed(moveSeed))
		}

		res, err := newEngine(db, opts...).MoveSamples(args[0], args[1], percentage)
		if err != nil {
			return err
		}

		var moved []string
		for _, g := range res.Groups {
			moved = append(moved, g.Moved...)
		}
		record(journal.LogMove(res.Source, res.Dest, percentage, moved))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Successf("Moved %s from %s to %s",
			ui.Count(res.Count(), "sample", "samples"), splitName(res.Source), splitName(res.Dest)))
		return printStatistics(out, db)
	},
}

func splitName(split string) string {
	if split == "" {
		return ui.Hint(report.NoSplitLabel)
	}
	return ui.Name(split)
}

func init() {
	moveCmd.Flags().Uint64Var(&moveSeed, "seed", 0, "Seed the random selection for a repeatable split")
	rootCmd.AddCommand(moveCmd)
}
