package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/exprgen"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of exprgen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("exprgen version %s\n", strings.TrimSpace(exprgen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
