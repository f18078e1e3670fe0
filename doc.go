/*
Package exprgen synthesises labelled datasets of mathematical expression strings.

Expressions are produced by walking a hand-authored adjacency table over a
fixed alphabet of digits, operators, brackets and trig/log functions, under
additional context-sensitive rules (decimal points, bracket balance, function
call parenthesisation). Every candidate is labelled by a sandboxed evaluator
that enforces a wall-clock deadline and a float64 magnitude guard.

Two sets are produced per run: valid expressions with their numeric values,
and invalid strings (adjacency-violating or random) labelled with the
sentinel "NaN".

# Usage

	eng, err := exprgen.New(exprgen.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}
	ds, err := eng.Build(ctx, dataset.Request{Valid: 100, Invalid: 100, MaxLength: 12})

The cmd/exprgen binary wraps the Engine with a CLI, an HTTP API and an MCP
server. Generated rows can be persisted to CSV files or Redis through the
ports.DatasetStore adapters.
*/
package exprgen
