package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of icd-engine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("icd-engine %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
