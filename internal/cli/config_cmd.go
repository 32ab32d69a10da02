package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/filabel/internal/config"
	"github.com/aidanlsb/filabel/internal/logging"
	"github.com/aidanlsb/filabel/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the filabel config.toml",
	Long: `Manage the filabel config.toml.

Without a subcommand, prints the resolved settings.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := config.CreateDefault(resolvedConfigPath)
		if err != nil {
			return &commandError{code: ErrFileWriteError, err: err}
		}

		out := cmd.OutOrStdout()
		if created {
			fmt.Fprintln(out, ui.Successf("Created config: %s", resolvedConfigPath))
		} else {
			fmt.Fprintf(out, "Config already exists: %s\n", resolvedConfigPath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one config.toml field",
	Long: fmt.Sprintf(`Sets one config.toml field. An empty value clears it.

Keys: %s

Examples:
  filabel config set database data/catalog.sqlite
  filabel config set log_level info
  filabel config set audit_log filabel-audit.jsonl
  filabel config set ui.accent 39`, strings.Join(config.Keys, ", ")),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], strings.TrimSpace(args[1])
		if key == "log_level" && value != "" {
			if _, err := logging.ParseLevel(value); err != nil {
				return &commandError{code: ErrInvalidInput, err: err}
			}
		}
		if err := cfg.Set(key, value); err != nil {
			return &commandError{code: ErrInvalidInput, err: err}
		}
		if err := config.SaveTo(resolvedConfigPath, cfg); err != nil {
			return &commandError{code: ErrFileWriteError, err: err}
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Set %s in %s", key, resolvedConfigPath))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config.toml location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), resolvedConfigPath)
	},
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	_, statErr := os.Stat(resolvedConfigPath)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config_path: %s\n", resolvedConfigPath)
	fmt.Fprintf(out, "exists:      %t\n", statErr == nil)
	fmt.Fprintf(out, "database:    %s\n", cfg.DatabaseLocator(dbFlag))
	level := cfg.LogLevel
	if level == "" {
		level = logging.DefaultLevel
	}
	fmt.Fprintf(out, "log_level:   %s\n", level)
	fmt.Fprintf(out, "audit_log:   %s\n", journal.Path())
	accent, ok := ui.AccentColor()
	if !ok {
		accent = "none"
	}
	fmt.Fprintf(out, "ui.accent:   %s\n", accent)
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
