package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cdfisher/osrs-tools/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	// Printing the version needs no configuration.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\ncommit: %s\nbuilt: %s\n", version.Project, version.Version, version.Commit, version.BuildDate)
	},
}
