package dataset

// Dataset is a logical collection of Fragments sharing a single Schema.
// Dataset implementations describe where fragments live and how they are
// discovered; the scanner treats them purely as a source of Fragments.
type Dataset interface {
	Schema() Schema
	// GetFragments returns a single-pass, lazy FragmentIterator over the
	// fragments of this Dataset which may contain rows matching the given
	// bound predicate. Implementations without fragment-level statistics
	// are free to ignore the predicate and yield every fragment. No
	// fragment work happens until the iterator is advanced.
	GetFragments(filter Expression) (FragmentIterator, error)
}

// Fragment is a source-specific chunk of a Dataset capable of producing
// scan tasks. How a Fragment physically reads its bytes is its own
// business; it consults ScanOptions.MaterializedFields to decide which
// columns must actually be read.
type Fragment interface {
	Schema() Schema
	// Scan returns a single-pass, lazy ScanTaskIterator over the scan
	// tasks required to read this Fragment under the given options.
	Scan(opts *ScanOptions, sctx *ScanContext) (ScanTaskIterator, error)
}
