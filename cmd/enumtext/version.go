package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/enumtext"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of enumtext",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "enumtext version %s\n", strings.TrimSpace(enumtext.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
