package cmd

import (
	"github.com/controleopcoes/controleopcoes/internal/constants"
	"github.com/controleopcoes/controleopcoes/internal/output"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version of the CLI",
	// version works even when the configuration is broken
	PersistentPreRun: func(_ *cobra.Command, _ []string) {},
	Run: func(_ *cobra.Command, _ []string) {
		output.KeyValue("CLI version", *constants.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
