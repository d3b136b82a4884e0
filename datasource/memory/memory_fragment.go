package memory

import (
	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/datasource"
)

// Fragment is an in-memory Fragment holding fully materialized Batches
type Fragment struct {
	schema  dataset.Schema
	batches []dataset.Batch
}

// CreateFragment is a factory for in-memory Fragments
func CreateFragment(schema dataset.Schema, batches []dataset.Batch) *Fragment {
	return &Fragment{schema: schema, batches: batches}
}

// Schema returns the physical Schema of this Fragment's stored Batches
func (f *Fragment) Schema() dataset.Schema {
	return f.schema
}

// Scan returns a single scan task which reads this Fragment's stored
// Batches through the filter/project/re-chunk pipeline
func (f *Fragment) Scan(opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	task := &scanTask{batches: f.batches, opts: opts}
	return dataset.CreateScanTaskSliceIterator([]dataset.ScanTask{task}), nil
}

// scanTask lazily applies the scan pipeline to stored Batches
type scanTask struct {
	batches []dataset.Batch
	opts    *dataset.ScanOptions
}

// Execute produces this task's Batches. No work happens until the
// returned iterator is advanced.
func (t *scanTask) Execute() (dataset.BatchIterator, error) {
	source := dataset.CreateBatchSliceIterator(t.batches)
	return datasource.CreateScanBatchIterator(source, t.opts), nil
}
