/*
Package domain contains the core domain models of the expression generator.

It defines the alphabet tokens the generator walks over, the labelled rows the
dataset builder produces and the evaluation outcome shared by every adapter.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Token: A symbol of the alphabet (digit, operator, bracket, function).
  - Result: The outcome of evaluating an expression, either a finite value or the sentinel.
  - Row: A labelled expression as persisted in a dataset.
  - Dataset: The valid and invalid row sets of a single run.
*/
package domain
