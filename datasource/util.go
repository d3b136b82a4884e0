package datasource

import (
	"sync"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/batch"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

// CreateScanBatchIterator wraps a source BatchIterator with the row
// pipeline the bundled Fragment implementations share: apply the scan's
// bound filter, project down to the scan's output schema, and re-chunk
// to the configured batch size. The wrapping is lazy; no source batch
// is read until the returned iterator is advanced. Source batches which
// filter down to zero rows are dropped. Useful for the implementation
// of Fragments.
func CreateScanBatchIterator(source dataset.BatchIterator, opts *dataset.ScanOptions) dataset.BatchIterator {
	return &scanBatchIterator{source: source, opts: opts}
}

type scanBatchIterator struct {
	source  dataset.BatchIterator
	opts    *dataset.ScanOptions
	pending []dataset.Batch
	err     error
	done    bool
	lock    sync.Mutex
}

// HasNextBatch returns true iff this BatchIterator can produce another Batch (or a pipeline error)
func (sbi *scanBatchIterator) HasNextBatch() bool {
	sbi.lock.Lock()
	defer sbi.lock.Unlock()
	sbi.fill()
	return len(sbi.pending) > 0 || sbi.err != nil
}

// NextBatch returns the next Batch if one is available, or an error
func (sbi *scanBatchIterator) NextBatch() (dataset.Batch, error) {
	sbi.lock.Lock()
	defer sbi.lock.Unlock()
	sbi.fill()
	if sbi.err != nil {
		return nil, sbi.err
	}
	if len(sbi.pending) == 0 {
		return nil, errors.NoMoreBatchesError{}
	}
	b := sbi.pending[0]
	sbi.pending = sbi.pending[1:]
	return b, nil
}

// fill pulls source batches through the filter/project/re-chunk
// pipeline until at least one output batch is pending, the source is
// exhausted, or an error occurs. Callers must hold the lock.
func (sbi *scanBatchIterator) fill() {
	for len(sbi.pending) == 0 && sbi.err == nil && !sbi.done {
		if !sbi.source.HasNextBatch() {
			sbi.done = true
			return
		}
		b, err := sbi.source.NextBatch()
		if err != nil {
			if _, ok := err.(errors.NoMoreBatchesError); ok {
				sbi.done = true
				return
			}
			sbi.err = err
			return
		}
		filtered, err := batch.Filter(b, sbi.opts.Filter())
		if err != nil {
			sbi.err = err
			return
		}
		if filtered.NumRows() == 0 {
			continue
		}
		projected, err := batch.Select(filtered, sbi.opts.Schema().ColumnNames())
		if err != nil {
			sbi.err = err
			return
		}
		sbi.pending = batch.Rechunk(projected, sbi.opts.BatchSize())
	}
}
