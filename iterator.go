package dataset

import (
	"sync"

	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

// FragmentIterator is a single-pass iterator over Fragments,
// regardless of where they come from.
type FragmentIterator interface {
	HasNextFragment() bool
	NextFragment() (Fragment, error)
}

// ScanTaskIterator is a single-pass iterator over ScanTasks.
type ScanTaskIterator interface {
	HasNextTask() bool
	NextTask() (ScanTask, error)
}

// BatchIterator is a single-pass iterator over Batches.
type BatchIterator interface {
	HasNextBatch() bool
	NextBatch() (Batch, error)
}

// fragmentSliceIterator produces a simple iterator for Fragments stored in a slice
type fragmentSliceIterator struct {
	fragments []Fragment
	next      int
	lock      sync.Mutex
}

// CreateFragmentSliceIterator produces a new FragmentIterator for iterating over a slice of Fragments
func CreateFragmentSliceIterator(fragments []Fragment) FragmentIterator {
	return &fragmentSliceIterator{fragments: fragments}
}

// HasNextFragment returns true iff this FragmentIterator can produce another Fragment
func (fsi *fragmentSliceIterator) HasNextFragment() bool {
	fsi.lock.Lock()
	defer fsi.lock.Unlock()
	return fsi.next < len(fsi.fragments)
}

// NextFragment returns the next Fragment if one is available, or an error
func (fsi *fragmentSliceIterator) NextFragment() (Fragment, error) {
	fsi.lock.Lock()
	defer fsi.lock.Unlock()
	if fsi.next >= len(fsi.fragments) {
		return nil, errors.NoMoreFragmentsError{}
	}
	frag := fsi.fragments[fsi.next]
	fsi.next++
	return frag, nil
}

// scanTaskSliceIterator produces a simple iterator for ScanTasks stored in a slice
type scanTaskSliceIterator struct {
	tasks []ScanTask
	next  int
	lock  sync.Mutex
}

// CreateScanTaskSliceIterator produces a new ScanTaskIterator for iterating over a slice of ScanTasks
func CreateScanTaskSliceIterator(tasks []ScanTask) ScanTaskIterator {
	return &scanTaskSliceIterator{tasks: tasks}
}

// HasNextTask returns true iff this ScanTaskIterator can produce another ScanTask
func (tsi *scanTaskSliceIterator) HasNextTask() bool {
	tsi.lock.Lock()
	defer tsi.lock.Unlock()
	return tsi.next < len(tsi.tasks)
}

// NextTask returns the next ScanTask if one is available, or an error
func (tsi *scanTaskSliceIterator) NextTask() (ScanTask, error) {
	tsi.lock.Lock()
	defer tsi.lock.Unlock()
	if tsi.next >= len(tsi.tasks) {
		return nil, errors.NoMoreScanTasksError{}
	}
	task := tsi.tasks[tsi.next]
	tsi.next++
	return task, nil
}

// batchSliceIterator produces a simple iterator for Batches stored in a slice
type batchSliceIterator struct {
	batches []Batch
	next    int
	lock    sync.Mutex
}

// CreateBatchSliceIterator produces a new BatchIterator for iterating over a slice of Batches
func CreateBatchSliceIterator(batches []Batch) BatchIterator {
	return &batchSliceIterator{batches: batches}
}

// HasNextBatch returns true iff this BatchIterator can produce another Batch
func (bsi *batchSliceIterator) HasNextBatch() bool {
	bsi.lock.Lock()
	defer bsi.lock.Unlock()
	return bsi.next < len(bsi.batches)
}

// NextBatch returns the next Batch if one is available, or an error
func (bsi *batchSliceIterator) NextBatch() (Batch, error) {
	bsi.lock.Lock()
	defer bsi.lock.Unlock()
	if bsi.next >= len(bsi.batches) {
		return nil, errors.NoMoreBatchesError{}
	}
	b := bsi.batches[bsi.next]
	bsi.next++
	return b, nil
}
