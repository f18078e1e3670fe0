/*
Package matrix provides a read-only view over a character transition table.

A table is a rectangular CSV document:

  - cell [0][0] holds the alphabet size (a leading byte-order mark is tolerated);
  - row 0, columns 1..N hold the token glyphs;
  - row 1 holds start-eligibility flags ("1"/"0") per token column;
  - row 2 holds end-eligibility flags;
  - row t+2 holds "may follow token t" flags, one column per candidate token.

The table is validated once when it is parsed. Queries never fail afterwards.
*/
package matrix
