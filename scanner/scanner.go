package scanner

import (
	"sync"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/logging"
)

// Scanner orchestrates a scan: it lazily enumerates the fragments of
// its source, lazily expands them into scan tasks, executes the tasks
// under the execution strategy its context selects, and assembles the
// per-task results into a single ordered Table. Scanners are immutable
// and are created only via a ScannerBuilder.
type Scanner struct {
	dataset  dataset.Dataset  // nil in single-fragment mode
	fragment dataset.Fragment // nil in dataset mode
	opts     *dataset.ScanOptions
	sctx     *dataset.ScanContext
	id       string
}

// Options returns the frozen ScanOptions this Scanner executes under
func (s *Scanner) Options() *dataset.ScanOptions {
	return s.opts
}

// Context returns the ScanContext this Scanner executes under
func (s *Scanner) Context() *dataset.ScanContext {
	return s.sctx
}

// GetFragments returns a single-pass lazy iterator over the fragments
// of this scan's source. In dataset mode no fragment is materialized
// until the iterator is advanced, which permits streaming over large
// datasets and short-circuiting.
func (s *Scanner) GetFragments() (dataset.FragmentIterator, error) {
	if s.fragment != nil {
		return dataset.CreateFragmentSliceIterator([]dataset.Fragment{s.fragment}), nil
	}
	return s.dataset.GetFragments(s.opts.Filter())
}

// Scan returns a single-pass lazy iterator over every scan task of this
// scan, flattening each fragment's tasks into one sequence. The first
// NextTask call triggers the entire chain of upstream lazy evaluation.
func (s *Scanner) Scan() (dataset.ScanTaskIterator, error) {
	fragments, err := s.GetFragments()
	if err != nil {
		return nil, err
	}
	return createScanTaskIterator(fragments, s.opts, s.sctx), nil
}

// tableAssemblyState is the only shared mutable state of a scan: a
// position-indexed, growable collection of per-task batch vectors. It
// is held behind a pointer so that a task which finishes after an early
// failure-triggered return writes into state the orchestrator has
// already abandoned, rather than into freed memory.
type tableAssemblyState struct {
	lock    sync.Mutex
	batches [][]dataset.Batch
}

// Emplace stores a task's collected batches at the task's discovery
// position, growing the collection first if the position is beyond its
// current length
func (state *tableAssemblyState) Emplace(b []dataset.Batch, position int) {
	state.lock.Lock()
	defer state.lock.Unlock()
	if len(state.batches) <= position {
		grown := make([][]dataset.Batch, position+1)
		copy(grown, state.batches)
		state.batches = grown
	}
	state.batches[position] = b
}

// flattenBatches concatenates per-task batch vectors in position order.
// Unused positions contribute nothing.
func flattenBatches(nested [][]dataset.Batch) []dataset.Batch {
	var flattened []dataset.Batch
	for _, taskBatches := range nested {
		flattened = append(flattened, taskBatches...)
	}
	return flattened
}

// ToTable eagerly executes the scan and assembles the results into a
// Table. Each scan task is assigned a position in discovery order and
// its batches land at that position regardless of completion order, so
// the Table's batch order always equals task discovery order even under
// parallel execution. On failure the first error is returned and no
// partial Table is produced.
func (s *Scanner) ToTable() (*Table, error) {
	tasks, err := s.Scan()
	if err != nil {
		return nil, err
	}
	taskGroup := s.sctx.TaskGroup()
	state := &tableAssemblyState{}

	submitted := 0
	for tasks.HasNextTask() {
		task, err := tasks.NextTask()
		if err != nil {
			if isNoMoreScanTasks(err) {
				break
			}
			// drain already-submitted tasks so no worker outlives the
			// scan; the iterator failure is the error surfaced
			if drainErr := taskGroup.Finish(); drainErr != nil {
				logging.Logf(logging.WarnLevel, "scan %s: task failed while draining: %v", s.id, drainErr)
			}
			return nil, err
		}
		position := submitted
		submitted++
		taskGroup.Append(func() error {
			batchIt, err := task.Execute()
			if err != nil {
				return err
			}
			local, err := collectBatches(batchIt)
			if err != nil {
				return err
			}
			state.Emplace(local, position)
			return nil
		})
	}
	logging.Logf(logging.TraceLevel, "scan %s: submitted %d scan tasks", s.id, submitted)

	// wait for every task to complete, or for the first error
	if err := taskGroup.Finish(); err != nil {
		return nil, err
	}
	table, err := CreateTable(s.opts.Schema(), flattenBatches(state.batches))
	if err != nil {
		return nil, err
	}
	logging.Logf(logging.TraceLevel, "scan %s: assembled table with %d rows (%d bytes) from %d tasks", s.id, table.NumRows(), table.NumBytes(), submitted)
	return table, nil
}
