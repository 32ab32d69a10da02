package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/filabel/internal/store"
	"github.com/aidanlsb/filabel/internal/ui"
)

var (
	labelsRemove bool
	splitsRemove bool
)

var labelsCmd = &cobra.Command{
	Use:   "labels [names...]",
	Short: "Register or remove label names",
	Long: `Registers label names, or removes them with --remove, then prints the
current labels. Removing a label leaves its samples in place.

Examples:
  filabel labels cat dog
  filabel labels --remove dog
  filabel labels`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister(cmd, store.Labels, args, labelsRemove)
	},
}

var splitsCmd = &cobra.Command{
	Use:   "splits [names...]",
	Short: "Register or remove split names",
	Long: `Registers split names, or removes them with --remove, then prints the
current splits.

Examples:
  filabel splits train test validation
  filabel splits --remove validation`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister(cmd, store.Splits, args, splitsRemove)
	},
}

func runRegister(cmd *cobra.Command, reg store.Registry, names []string, remove bool) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	current, err := newEngine(db).RegisterNames(reg, names, remove)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		record(journal.LogRegister(string(reg), names, remove))
	}

	rendered := make([]string, len(current))
	for i, name := range current {
		rendered[i] = ui.Name(name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", reg, strings.Join(rendered, ", "))
	return nil
}

func init() {
	labelsCmd.Flags().BoolVar(&labelsRemove, "remove", false, "Remove the names instead of registering them")
	splitsCmd.Flags().BoolVar(&splitsRemove, "remove", false, "Remove the names instead of registering them")
	rootCmd.AddCommand(labelsCmd, splitsCmd)
}
