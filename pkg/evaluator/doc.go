/*
Package evaluator computes the ground-truth label of a generated expression.

An expression is rewritten into a Lua expression (the exponent operator is
already "^", curly brackets become round ones, function names are qualified
with the math library) and executed in a fresh gopher-lua state that only has
the math library and a cot function, the reciprocal of math.tan, loaded.

Each evaluation runs in its own goroutine under a deadline. The Lua VM is
bound to the deadline context, and the caller stops waiting as soon as the
deadline passes, so a pathological input never stalls the caller. Syntax
errors, runtime errors, non-numeric results, NaN, infinities and timeouts all
collapse to domain.Sentinel.
*/
package evaluator
