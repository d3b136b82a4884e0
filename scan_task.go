package dataset

// A ScanTask is a unit of work which, when executed, yields a sequence
// of Batches conforming to the scan's output schema. Each ScanTask is
// executed exactly once by a Scanner, potentially on a worker other
// than the one which created it.
type ScanTask interface {
	Execute() (BatchIterator, error)
}
