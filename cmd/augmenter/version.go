package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/augmenter"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of augmenter",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "augmenter version %s\n", strings.TrimSpace(augmenter.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
