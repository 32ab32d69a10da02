package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/filabel/internal/audit"
	"github.com/aidanlsb/filabel/internal/ui"
)

var (
	historySince string
	historyFile  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the journal of catalog changes",
	Long: `Shows the operations recorded in the journal configured by audit_log.

Examples:
  filabel history
  filabel history --since 24h
  filabel history --file images/cat/001.jpg`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !journal.Enabled() {
			fmt.Fprintln(out, ui.Hint("No journal configured. Set one with 'filabel config set audit_log <path>'."))
			return nil
		}

		var (
			entries []audit.Entry
			err     error
		)
		switch {
		case historyFile != "":
			entries, err = journal.ReadForFile(historyFile)
		case historySince != "":
			d, perr := time.ParseDuration(historySince)
			if perr != nil {
				return &commandError{code: ErrInvalidInput, err: perr, suggestion: "Use a duration like 30m or 24h"}
			}
			entries, err = journal.ReadSince(time.Now().Add(-d))
		default:
			entries, err = journal.Read()
		}
		if err != nil {
			return &commandError{code: ErrInternal, err: err}
		}

		for _, e := range entries {
			fmt.Fprintln(out, describeEntry(e))
		}
		return nil
	},
}

func describeEntry(e audit.Entry) string {
	ts := ui.Hint(e.Timestamp.Local().Format(time.DateTime))
	switch e.Operation {
	case audit.OpRegister, audit.OpUnregister:
		return fmt.Sprintf("%s  %s %s: %s", ts, e.Operation, e.Registry, strings.Join(e.Names, ", "))
	case audit.OpAdd:
		return fmt.Sprintf("%s  add %s to %s", ts, ui.Count(e.Count, "sample", "samples"), strings.Join(e.Names, ", "))
	case audit.OpMove:
		pct := 0.0
		if e.Percentage != nil {
			pct = *e.Percentage
		}
		return fmt.Sprintf("%s  move %s (%g%%) from %s to %s", ts, ui.Count(e.Count, "sample", "samples"),
			pct, journalSplit(e.Source), journalSplit(e.Dest))
	case audit.OpRemove:
		return fmt.Sprintf("%s  remove %s", ts, ui.Count(e.Count, "row", "rows"))
	}
	return fmt.Sprintf("%s  %s", ts, e.Operation)
}

func journalSplit(split *string) string {
	if split == nil {
		return splitName("")
	}
	return splitName(*split)
}

func init() {
	historyCmd.Flags().StringVar(&historySince, "since", "", "Only show entries newer than this duration (e.g. 24h)")
	historyCmd.Flags().StringVar(&historyFile, "file", "", "Only show entries that touched this file")
	historyCmd.MarkFlagsMutuallyExclusive("since", "file")
	rootCmd.AddCommand(historyCmd)
}
