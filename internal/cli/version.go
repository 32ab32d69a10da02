package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/filabel/internal/buildinfo"
	"github.com/aidanlsb/filabel/internal/store"
)

var versionJSON bool

// versionReport is the --json output: the build plus the catalog schema
// version this binary writes.
type versionReport struct {
	buildinfo.Info
	CatalogSchema int `json:"catalog_schema"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show filabel version and build information",
	Long: `Prints the filabel version, the commit it was built from, and the catalog
schema version it reads and writes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := versionReport{Info: buildinfo.Current(), CatalogSchema: store.CurrentDBVersion}
		out := cmd.OutOrStdout()

		if versionJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}

		fmt.Fprintln(out, v.Info)
		fmt.Fprintf(out, "catalog schema v%d\n", v.CatalogSchema)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")
	rootCmd.AddCommand(versionCmd)
}
