package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprout"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sprout",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sprout version %s\n", sprout.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
