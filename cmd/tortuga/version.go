package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped by the build; the default marks a source build.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tortuga version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tortuga " + Version)
	},
}

func init() {
	rootCmd.SetVersionTemplate("tortuga {{.Version}}\n")
	rootCmd.Version = Version
	rootCmd.AddCommand(versionCmd)
}
