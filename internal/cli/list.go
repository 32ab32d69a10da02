package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/filabel/internal/atomicfile"
	"github.com/aidanlsb/filabel/internal/catalog"
	"github.com/aidanlsb/filabel/internal/report"
)

var (
	listJSON   bool
	listYAML   bool
	listFormat string
	listOutput string
	listSplit  string
	listLabel  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the whole catalog",
	Long: `Prints every labeled sample. The default is one label,split,filename CSV
line per sample, with "null" for no split. There is no header row, and fields
containing commas, quotes or newlines are quoted as in RFC 4180. --json and
--yaml print the catalog grouped by split and label, in the form training code
loads directly.

--split prints only one split (pass "null" for samples without a split) as
label_id,label,filename lines, where label_id is the label's position among all
registered labels. --label further restricts the lines to one label.

An empty catalog prints nothing.

Examples:
  filabel list
  filabel list --json
  filabel list --yaml --output catalog.yaml
  filabel list --split train
  filabel list --split null --label cat`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := listFormatFromFlags()
		if err != nil {
			return err
		}
		if listLabel != "" && !cmd.Flags().Changed("split") {
			return &commandError{
				code:       ErrInvalidInput,
				err:        errors.New("--label requires --split"),
				suggestion: `Pass --split, or --split null for samples without a split`,
			}
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		write := func(w io.Writer) error {
			if cmd.Flags().Changed("split") {
				return report.ListSplit(w, db, splitArg(listSplit), listLabel)
			}
			return report.List(w, db, format)
		}

		if listOutput == "" {
			return write(cmd.OutOrStdout())
		}

		err = atomicfile.Write(listOutput, 0o644, write)
		if err != nil {
			return &commandError{code: ErrFileWriteError, err: err}
		}
		return nil
	},
}

// splitArg maps the "null" split argument to the empty name used for samples
// without a split.
func splitArg(name string) string {
	if name == catalog.NoSplitKey {
		return ""
	}
	return name
}

func listFormatFromFlags() (report.Format, error) {
	switch {
	case listJSON:
		return report.FormatJSON, nil
	case listYAML:
		return report.FormatYAML, nil
	}
	format, err := report.ParseFormat(listFormat)
	if err != nil {
		return "", &commandError{code: ErrInvalidInput, err: err}
	}
	return format, nil
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the catalog as JSON")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Print the catalog as YAML")
	listCmd.Flags().StringVar(&listFormat, "format", string(report.FormatCSV), "Output format: csv, json or yaml")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "Write to a file instead of stdout")
	listCmd.Flags().StringVar(&listSplit, "split", "", `Only list this split as label_id,label,filename ("null" for no split)`)
	listCmd.Flags().StringVar(&listLabel, "label", "", "With --split, only list this label")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml", "format")
	listCmd.MarkFlagsMutuallyExclusive("json", "split")
	listCmd.MarkFlagsMutuallyExclusive("yaml", "split")
	rootCmd.AddCommand(listCmd)
}
