package main

import (
	"fmt"
	"os"

	"github.com/aretw0/exprgen/internal/cli"
	"github.com/aretw0/exprgen/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the character table as a diagram",
	Long:  `Outputs a Mermaid diagram (graph LR) of the legal transitions. Unreachable tokens and dead ends are highlighted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := cli.Setup(optionsFromFlags(cmd))
		if err != nil {
			fmt.Printf("Error initializing exprgen: %v\n", err)
			os.Exit(1)
		}

		// Findings are drawn even when the table is unusable.
		report, _ := app.Engine.Validate()
		output := graph.GenerateMermaid(app.Engine.Matrix(), &graph.Overlay{
			Unreachable: report.Unreachable,
			DeadEnds:    report.DeadEnds,
		})
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
