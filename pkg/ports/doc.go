/*
Package ports defines the driven ports (interfaces) of the expression generator.

These interfaces decouple dataset building from the evaluation engine and from
the place rows are persisted, so CSV files, Redis or memory can be swapped
without touching generation logic.

# Key Interfaces

  - Evaluator: Assigns a ground-truth value (or the sentinel) to an expression.
  - DatasetStore: Persists and reloads labelled rows per run and set.
*/
package ports
