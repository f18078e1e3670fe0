package main

import (
	"fmt"
	"os"

	"github.com/aretw0/exprgen/internal/cli"
	"github.com/aretw0/exprgen/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the character table for consistency",
	Long:  `Crawls the table from the start-eligible tokens and reports unreachable tokens, dead ends and missing end tokens.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := cli.Setup(optionsFromFlags(cmd))
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.Validate(app, os.Stdout); err != nil {
			fmt.Printf("%s %v\n", tui.Status(false, "Validation failed:"), err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
