package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/filabel/internal/report"
	"github.com/aidanlsb/filabel/internal/store"
	"github.com/aidanlsb/filabel/internal/ui"
)

var statsTable bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show sample counts per label and split",
	Long: `Displays how many samples each label has in each split, one
"<label> <split>: <n> sample(s)" line per pair, with "(no split)" for samples
without a split. Pairs with no samples are left out, and an empty catalog
prints "No labeled samples." instead. --table shows the same counts as a
label by split grid.

Examples:
  filabel stats
  filabel stats --table`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		out := cmd.OutOrStdout()
		if !statsTable {
			return printStatistics(out, db)
		}

		stats, err := report.Statistics(db)
		if err != nil {
			return &commandError{code: ErrDatabaseError, err: err}
		}
		fmt.Fprint(out, statsPivot(stats, ui.NewDisplayContext()))
		return nil
	},
}

// statsPivot renders stats as a label by split table with row totals.
func statsPivot(stats []store.Stat, display *ui.DisplayContext) string {
	counts := make(map[string]map[string]int)
	splitSet := make(map[string]bool)
	for _, s := range stats {
		if counts[s.Label] == nil {
			counts[s.Label] = make(map[string]int)
		}
		counts[s.Label][s.Split] += s.Count
		splitSet[s.Split] = true
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	splits := make([]string, 0, len(splitSet))
	for split := range splitSet {
		splits = append(splits, split)
	}
	// No split sorts last.
	sort.Slice(splits, func(i, j int) bool {
		if splits[i] == "" || splits[j] == "" {
			return splits[j] == ""
		}
		return splits[i] < splits[j]
	})

	table := ui.NewTable(len(splits) + 2)
	header := []string{ui.Header("label")}
	for _, split := range splits {
		name := split
		if name == "" {
			name = report.NoSplitLabel
		}
		header = append(header, ui.Header(name))
	}
	table.AddRow(append(header, ui.Header("total"))...)

	maxLabel := display.TermWidth / 3
	for _, label := range labels {
		row := []string{ui.Name(display.Truncate(label, maxLabel))}
		total := 0
		for _, split := range splits {
			n := counts[label][split]
			total += n
			row = append(row, strconv.Itoa(n))
		}
		table.AddRow(append(row, strconv.Itoa(total))...)
	}
	table.AddRow(append(make([]string, len(splits)+1), ui.Bold.Render(strconv.Itoa(report.Total(stats))))...)
	return table.String()
}

func init() {
	statsCmd.Flags().BoolVar(&statsTable, "table", false, "Show counts as a label by split table")
	rootCmd.AddCommand(statsCmd)
}
