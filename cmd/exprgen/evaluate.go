package main

import (
	"fmt"
	"os"

	"github.com/aretw0/exprgen/internal/cli"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <expression>...",
	Short: "Evaluate expressions and print their labels",
	Long:  `Evaluates each expression within the deadline and prints it with its value, or NaN when it cannot be evaluated.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := cli.Setup(optionsFromFlags(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cli.Evaluate(cmd.Context(), app, args, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
