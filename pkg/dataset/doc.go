/*
Package dataset orchestrates generation and evaluation into labelled sets.

The valid set keeps expressions generated in valid mode whose evaluation yields
a finite value. The invalid set is split between expressions generated in
invalid mode (adjacency violating) and random printable strings; a candidate
only enters the invalid set when its evaluation yields the sentinel.

Candidate production may run on several workers. Each worker owns its own
generator, random source and generation context; a single collector appends
accepted rows, so the collections need no locking.

# Usage

	b := dataset.NewBuilder(matrix.Default(), evaluator.New(),
		dataset.WithSeed(42),
	)
	ds, err := b.Build(ctx, dataset.Request{Valid: 100, Invalid: 100, MaxLength: 12})
*/
package dataset
