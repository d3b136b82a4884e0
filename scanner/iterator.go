package scanner

import (
	"sync"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

// scanTaskIterator flattens a FragmentIterator into a single lazy
// ScanTaskIterator by asking each Fragment for its scan tasks as the
// iteration reaches it. The first NextTask call does all the work of
// unwinding the chained iterators; subsequent calls advance
// incrementally.
type scanTaskIterator struct {
	fragments dataset.FragmentIterator
	tasks     dataset.ScanTaskIterator
	opts      *dataset.ScanOptions
	sctx      *dataset.ScanContext
	lock      sync.Mutex
}

func createScanTaskIterator(fragments dataset.FragmentIterator, opts *dataset.ScanOptions, sctx *dataset.ScanContext) dataset.ScanTaskIterator {
	return &scanTaskIterator{fragments: fragments, opts: opts, sctx: sctx}
}

// HasNextTask returns true iff this ScanTaskIterator can produce another ScanTask
func (sti *scanTaskIterator) HasNextTask() bool {
	sti.lock.Lock()
	defer sti.lock.Unlock()
	return (sti.tasks != nil && sti.tasks.HasNextTask()) || sti.fragments.HasNextFragment()
}

// NextTask returns the next ScanTask if one is available, or an error
func (sti *scanTaskIterator) NextTask() (dataset.ScanTask, error) {
	sti.lock.Lock()
	defer sti.lock.Unlock()
	for {
		// expand the next fragment if the current one is exhausted
		if sti.tasks == nil || !sti.tasks.HasNextTask() {
			if !sti.fragments.HasNextFragment() {
				return nil, errors.NoMoreScanTasksError{}
			}
			frag, err := sti.fragments.NextFragment()
			if err != nil {
				if _, ok := err.(errors.NoMoreFragmentsError); ok {
					return nil, errors.NoMoreScanTasksError{}
				}
				return nil, err
			}
			tasks, err := frag.Scan(sti.opts, sti.sctx)
			if err != nil {
				return nil, err
			}
			sti.tasks = tasks
			continue
		}
		task, err := sti.tasks.NextTask()
		if err != nil {
			if _, ok := err.(errors.NoMoreScanTasksError); ok {
				continue
			}
			return nil, err
		}
		return task, nil
	}
}

func isNoMoreScanTasks(err error) bool {
	_, ok := err.(errors.NoMoreScanTasksError)
	return ok
}

// collectBatches eagerly drains a BatchIterator into a slice
func collectBatches(it dataset.BatchIterator) ([]dataset.Batch, error) {
	var batches []dataset.Batch
	for it.HasNextBatch() {
		b, err := it.NextBatch()
		if err != nil {
			if _, ok := err.(errors.NoMoreBatchesError); ok {
				break
			}
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
