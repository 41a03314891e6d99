package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/spigell/hire-picker/cmd.version=...".
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hire-picker version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("%s %s (%s)\n", app, version, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
