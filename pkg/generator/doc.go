/*
Package generator walks a transition matrix to synthesise expression strings.

Generation is context sensitive: on top of the adjacency flags of the table, a
per-expression Context tracks whether the cursor sits inside a numeric literal
(so a decimal point is placed at most once, and only after a digit) and which
brackets are still open (so a close bracket only matches the innermost open
one). Function tokens render as "name(" and therefore open a round bracket.

Valid-mode selection samples until every check passes, bounded by a retry
budget. Invalid-mode selection samples once and uses the token verbatim.

Brackets left open at the end of an expression are closed by appending the
matching glyphs in LIFO order. The tokens preceding those forced closes are
never checked against the table, so an emitted expression is only as valid as
its adjacency-local choices.
*/
package generator
