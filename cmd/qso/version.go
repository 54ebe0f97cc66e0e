package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/qso"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of qso",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "qso version %s\n", strings.TrimSpace(qso.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
