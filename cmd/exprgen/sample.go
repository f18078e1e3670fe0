package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/exprgen/internal/cli"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <n> <maxLength>",
	Short: "Preview generated expressions without writing them",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		n, err1 := strconv.Atoi(args[0])
		maxLength, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil || n <= 0 || maxLength <= 0 {
			fmt.Println("Error: n and maxLength must be positive integers.")
			os.Exit(1)
		}

		app, err := cli.Setup(optionsFromFlags(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := cli.WithInterrupt(cmd.Context())
		defer cancel()

		if err := cli.Sample(ctx, app, n, maxLength, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
