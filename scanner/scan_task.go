package scanner

import (
	dataset "github.com/YashJipkate/skyhookdm-arrow"
)

// InMemoryScanTask is the trivial ScanTask: it wraps a pre-supplied
// vector of Batches and performs no I/O when executed.
type InMemoryScanTask struct {
	batches []dataset.Batch
	opts    *dataset.ScanOptions
	sctx    *dataset.ScanContext
}

// CreateInMemoryScanTask is a factory for InMemoryScanTasks
func CreateInMemoryScanTask(batches []dataset.Batch, opts *dataset.ScanOptions, sctx *dataset.ScanContext) *InMemoryScanTask {
	return &InMemoryScanTask{batches: batches, opts: opts, sctx: sctx}
}

// Execute returns an iterator over the wrapped Batches
func (t *InMemoryScanTask) Execute() (dataset.BatchIterator, error) {
	return dataset.CreateBatchSliceIterator(t.batches), nil
}

// ScanTaskIteratorFromBatches wraps a vector of Batches into a
// ScanTaskIterator yielding a single InMemoryScanTask. Useful for
// Fragment implementations whose data is already materialized in the
// scan's output shape.
func ScanTaskIteratorFromBatches(batches []dataset.Batch, opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	task := CreateInMemoryScanTask(batches, opts, sctx)
	return dataset.CreateScanTaskSliceIterator([]dataset.ScanTask{task}), nil
}
