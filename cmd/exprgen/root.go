package main

import (
	"fmt"
	"os"

	"github.com/aretw0/exprgen/internal/cli"
	"github.com/aretw0/exprgen/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "exprgen <valid> <invalid> <maxLength>",
	Short: "exprgen generates labelled arithmetic expressions",
	Long: `exprgen builds a dataset of arithmetic expressions from a character table.
Valid expressions are labelled with their value, invalid ones with NaN, and
both sets are written as CSV files (valid_expressions.csv, invalid_expressions.csv).`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		req, err := cli.ParseCounts(args)
		if err != nil {
			cli.PrintUsageError(os.Stdout, err)
			os.Exit(1)
		}

		opts := optionsFromFlags(cmd)
		app, err := cli.Setup(opts)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if !opts.Headless && tui.IsTerminal() {
			tui.PrintBanner(os.Stderr)
		}

		ctx, cancel := cli.WithInterrupt(cmd.Context())
		defer cancel()

		if _, err := cli.Run(ctx, app, req, os.Stdout, opts.Headless); err != nil {
			if cli.InterruptSignal(ctx) != nil {
				os.Exit(130)
			}
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file (default exprgen.yaml)")
	flags.String("matrix", "", "Character table CSV (default ./char_matrix.csv, else embedded)")
	flags.Duration("deadline", 0, "Evaluation deadline per expression (default 1s)")
	flags.Uint64("seed", 0, "Seed for reproducible output with one worker")
	flags.Int("workers", 0, "Candidate-producing goroutines (default 1)")
	flags.Int("max-attempts", 0, "Stop after this many candidates per set (default unbounded)")
	flags.Bool("debug", false, "Enable debug logging")

	rootCmd.Flags().StringP("out", "o", "", "Directory the CSV files are written to (default .)")
	rootCmd.Flags().String("redis", "", "Also push datasets to Redis at this address")
	rootCmd.Flags().String("metrics-file", "", "Write run metrics in Prometheus textfile format")
	rootCmd.Flags().Bool("headless", false, "Print only the longest metric")
}

// optionsFromFlags collects the flags that were explicitly set.
func optionsFromFlags(cmd *cobra.Command) cli.Options {
	var opts cli.Options
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Matrix, _ = cmd.Flags().GetString("matrix")
	opts.Deadline, _ = cmd.Flags().GetDuration("deadline")
	opts.Workers, _ = cmd.Flags().GetInt("workers")
	opts.MaxAttempts, _ = cmd.Flags().GetInt("max-attempts")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts.Seed = &seed
	}
	if cmd.Flags().Lookup("out") != nil {
		opts.OutputDir, _ = cmd.Flags().GetString("out")
		opts.RedisAddr, _ = cmd.Flags().GetString("redis")
		opts.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
		opts.Headless, _ = cmd.Flags().GetBool("headless")
	}
	return opts
}
