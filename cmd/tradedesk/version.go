package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blocksecure/tradedesk"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tradedesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tradedesk version %s\n", tradedesk.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
